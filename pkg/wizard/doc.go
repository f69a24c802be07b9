// Package wizard drives the four-step notification flow: pick a template,
// collect recipients, write the content, review and send.
//
// Step movement goes through a guarded transition table. Next only advances
// when CanAdvance holds for the current step, Prev walks back, and GoTo jumps
// anywhere in range without validation (used for step-indicator clicks):
//
//	w := wizard.New(
//		wizard.WithCatalog(cat),
//		wizard.WithDispatcher(client),
//		wizard.WithCredentials(creds),
//		wizard.WithStats(tracker),
//	)
//
//	_ = w.ApplyTemplate(ctx, "welcome")
//	_ = w.Next()
//	_ = w.Recipients().AddSingle("ana@escola.edu.br")
//	_ = w.Next()
//	_ = w.Next()
//	outcome, err := w.Send(ctx)
//
// Send validates the state, checks that a bearer credential is present,
// issues exactly one request and, on success, records the send counters and
// resets the wizard to step 1. Failures leave the state untouched so the user
// can retry.
//
// A Wizard belongs to a single session and is not safe for concurrent use,
// apart from Send rejecting overlapping calls with ErrSendInProgress.
package wizard
