package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// LayoutProps customizes the email frame.
type LayoutProps struct {
	Title        string
	ProductName  string
	SupportEmail string
}

// Layout frames body in the portal's email chrome. All props are escaped;
// body is rendered as given.
func Layout(props LayoutProps, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := `<!DOCTYPE html><html lang="pt-BR"><head><meta charset="utf-8">` +
			`<meta name="viewport" content="width=device-width, initial-scale=1">` +
			`<title>` + templ.EscapeString(props.Title) + `</title></head>` +
			`<body style="margin:0;padding:0;background:#f4f6f8;font-family:Arial,Helvetica,sans-serif;color:#1f2933;">` +
			`<table role="presentation" width="100%" cellpadding="0" cellspacing="0"><tr><td align="center" style="padding:24px;">` +
			`<table role="presentation" width="600" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:8px;">`
		if props.ProductName != "" {
			head += `<tr><td style="padding:20px 32px;border-bottom:1px solid #e4e7eb;font-size:18px;font-weight:bold;">` +
				templ.EscapeString(props.ProductName) + `</td></tr>`
		}
		head += `<tr><td style="padding:32px;font-size:15px;line-height:1.6;">`
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}

		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}

		foot := `</td></tr>`
		if props.SupportEmail != "" {
			addr := templ.EscapeString(props.SupportEmail)
			foot += `<tr><td style="padding:16px 32px;border-top:1px solid #e4e7eb;font-size:12px;color:#7b8794;">` +
				`Dúvidas? Escreva para <a href="mailto:` + addr + `">` + addr + `</a>.</td></tr>`
		}
		foot += `</table></td></tr></table></body></html>`
		_, err := io.WriteString(w, foot)
		return err
	})
}

// Body renders trusted HTML.
func Body(html string) templ.Component {
	return templ.Raw(html)
}

// RenderPage frames html with Layout and returns the finished document.
func RenderPage(ctx context.Context, props LayoutProps, html string) (string, error) {
	var sb strings.Builder
	if err := Layout(props, Body(html)).Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
