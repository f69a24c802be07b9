// Package email delivers notification emails directly, without the
// notification service, for offline runs and small installations.
//
// EmailSender is the provider abstraction. Two implementations ship:
//   - NewPostmarkClient for real delivery through Postmark
//   - NewDevSender, which writes each email as .html and .json files
//
// Both validate SendEmailParams first and report failures with the sentinel
// errors ErrInvalidParams, ErrInvalidConfig and ErrFailedToSendEmail:
//
//	sender, err := email.NewPostmarkClient(cfg)
//	if err != nil {
//		return err
//	}
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "ana@escola.edu.br",
//		Subject:  "Reunião de pais",
//		BodyHTML: body,
//		Tag:      "announcement",
//	})
//
// The templates subpackage wraps message bodies in the shared HTML layout.
package email
