package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"delights/internal/views/components"
	"delights/internal/views/layout"
)

// Login renders the full sign-in page.
func Login(message, email string) templ.Component {
	return layout.Layout("Sign in | Delights", nil, LoginPartial(message, email), false)
}

// LoginPartial renders the sign-in form for HTMX swaps.
func LoginPartial(message, email string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(ctx, w)
		m.Raw(`<section class="auth" data-auth="login"><h1>Sign in</h1>`).
			Component(components.Message("error", message)).
			Raw(`<form method="post" action="/login" hx-post="/login" hx-target="#content">`,
				`<label>Email<input type="email" name="email" required value="`).Text(email).Raw(`"></label>`,
			`<label>Password<input type="password" name="password" required></label>`,
			`<button type="submit">Sign in</button></form>`,
			`<p>New here? <a href="/signup" hx-boost="true">Create an account</a></p></section>`)
		return m.Err()
	})
}

// Signup renders the full registration page.
func Signup(message, name, email string) templ.Component {
	return layout.Layout("Create account | Delights", nil, SignupPartial(message, name, email), false)
}

// SignupPartial renders the registration form for HTMX swaps.
func SignupPartial(message, name, email string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(ctx, w)
		m.Raw(`<section class="auth" data-auth="signup"><h1>Create account</h1>`).
			Component(components.Message("error", message)).
			Raw(`<form method="post" action="/signup" hx-post="/signup" hx-target="#content">`,
				`<label>Name<input type="text" name="name" value="`).Text(name).Raw(`"></label>`,
			`<label>Email<input type="email" name="email" required value="`).Text(email).Raw(`"></label>`,
			`<label>Password<input type="password" name="password" minlength="8" required></label>`,
			`<label>Confirm password<input type="password" name="confirm_password" minlength="8" required></label>`,
			`<button type="submit">Create account</button></form>`,
			`<p>Already registered? <a href="/login" hx-boost="true">Sign in</a></p></section>`)
		return m.Err()
	})
}
