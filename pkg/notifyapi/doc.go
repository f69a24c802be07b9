// Package notifyapi is the HTTP client for the notification service.
//
// It speaks the JSON contracts the portal front end uses:
//
//	POST   /api/notifications/send
//	GET    /api/notifications/templates
//	POST   /api/notifications/templates
//	PUT    /api/notifications/templates
//	DELETE /api/notifications/templates?id=<id>
//
// Every response is wrapped in an envelope {success, message, data}. A non-2xx
// status or success:false becomes an *APIError carrying the server message.
// Transport failures wrap ErrRequestFailed. Requests are never retried.
//
// Authorization comes from an oauth2.TokenSource, so any credential store that
// can produce a bearer token plugs in:
//
//	client := notifyapi.New("https://portal.example.com",
//		notifyapi.WithTokenSource(creds.TokenSource(ctx)),
//	)
//	err := client.Send(ctx, notifyapi.NewSendRequest(subject, body, false, nil, recipients))
//
// Client implements catalog.TemplateStore.
package notifyapi
