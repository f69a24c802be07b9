// Package catalog resolves notification templates from two sources: the
// fixed built-in catalog compiled into the binary and user-authored templates
// kept by the remote template store.
//
// Catalog.FindByID checks the local provider first and falls back to the
// remote one, so call sites never merge the two lists themselves:
//
//	cat := catalog.New(catalog.Builtin(), catalog.NewRemoteProvider(apiClient))
//	tpl, err := cat.FindByID(ctx, "welcome")
//
// Manager wraps the remote store with validation for create, update, and
// delete. Built-in templates are read-only.
package catalog
