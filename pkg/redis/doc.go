// Package redis connects to Redis with retries and exposes a kvstore.Store
// backed by it, so credentials and send counters can be shared between
// machines running the CLI.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	store := redis.NewStore(client, redis.WithKeyPrefix("notifykit:"))
package redis
