package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

var (
	valkeyInstance *ValkeyClient
	valkeyOnce     sync.Once
)

type ValkeyClient struct {
	Client valkey.Client
}

// VALKEY_CASTS_KEY holds hashes of casts already run through the pipeline,
// so re-delivered raw records are not reprocessed within the TTL window.
const (
	VALKEY_CASTS_KEY = "farcaster:processed_casts"
	seenCastsTTL     = 24 * time.Hour
)

func InitValkey() *ValkeyClient {
	valkeyOnce.Do(func() {
		valkeyAddr := os.Getenv("VALKEY_INIT_ADDRESS")
		valkeyPassword := os.Getenv("VALKEY_PASSWORD")
		useTLS := os.Getenv("VALKEY_TLS") == "true"

		opts := valkey.ClientOption{
			InitAddress: []string{
				valkeyAddr,
			},
			Password:         valkeyPassword,
			ConnWriteTimeout: 5 * time.Second,
			SelectDB:         0,
		}

		if useTLS {
			opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
		}

		client, err := valkey.NewClient(opts)
		if err != nil {
			panic(fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
		defer cancel()

		c := client.Do(ctx, client.B().Ping().Build())
		if c.Error() != nil {
			panic(fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", c.Error()))
		}

		slog.Info("[ValkeyClient] Successfully connected to valkey")

		valkeyInstance = &ValkeyClient{Client: client}
	})
	return valkeyInstance
}

func CloseValkey() {
	if valkeyInstance != nil {
		valkeyInstance.Client.Close()
	}
}

func GetValkeyClient() *ValkeyClient {
	if valkeyInstance == nil {
		return InitValkey()
	}
	return valkeyInstance
}

// SeenCast reports whether a cast hash was already processed recently.
func (vc *ValkeyClient) SeenCast(ctx context.Context, hash string) (bool, error) {
	return vc.Client.Do(ctx, vc.Client.B().Sismember().
		Key(VALKEY_CASTS_KEY).Member(hash).Build()).AsBool()
}

// MarkCastsSeen records a batch of processed cast hashes and makes sure the
// seen-set expires.
func (vc *ValkeyClient) MarkCastsSeen(ctx context.Context, hashes []string) error {
	if len(hashes) == 0 {
		return nil
	}

	if err := vc.Client.Do(ctx, vc.Client.B().Sadd().
		Key(VALKEY_CASTS_KEY).Member(hashes...).Build()).Error(); err != nil {
		return fmt.Errorf("[ValkeyClient] failed to mark casts seen: %w", err)
	}

	ttl, err := vc.Client.Do(ctx, vc.Client.B().Ttl().Key(VALKEY_CASTS_KEY).Build()).AsInt64()
	if err == nil && ttl == -1 {
		vc.Client.Do(ctx, vc.Client.B().Expire().
			Key(VALKEY_CASTS_KEY).Seconds(int64(seenCastsTTL.Seconds())).Build())
	}
	return nil
}
