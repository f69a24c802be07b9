// Package credentials looks up the bearer credential used to authorize calls
// to the notification API.
//
// The credential lives in a kvstore.Store. Older front-end builds saved it
// under different keys, so Lookup walks a list of keys in priority order and
// returns the first usable value:
//
//	src := credentials.New(store)
//	tok, err := src.Lookup(ctx)
//	if errors.Is(err, credentials.ErrNoCredential) {
//		// ask the user to log in again
//	}
//
// TokenSource adapts the same lookup to golang.org/x/oauth2 so HTTP clients can
// attach the Authorization header with token.SetAuthHeader.
package credentials
