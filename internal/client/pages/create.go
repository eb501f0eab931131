package pages

import "context"

// CreatePage submits a new user.
type CreatePage struct {
	deps   Deps
	form   *Form
	flight inflight
}

func NewCreatePage(deps Deps) *CreatePage {
	return &CreatePage{deps: deps, form: NewForm(deps.Validator)}
}

func (p *CreatePage) Form() *Form { return p.form }

func (p *CreatePage) Busy() bool { return p.flight.Busy() }

// Submit sends the form. An invalid form never reaches the API. The server's
// answer is shown as a toast: success on creation, warning on rejection. The
// form keeps its values either way.
func (p *CreatePage) Submit(ctx context.Context) error {
	if !p.form.Valid() {
		p.deps.Notifier.Notify(p.deps.Validator.Text("form_invalid"), LevelWarning)
		return ErrFormInvalid
	}
	if !p.flight.begin() {
		return ErrBusy
	}
	defer p.flight.end()

	res, err := p.deps.API.Create(ctx, p.form.Request())
	if err != nil {
		p.deps.Logger.Error("❌ [CreatePage] Failed to create user", "error", err)
		p.deps.Notifier.Notify(err.Error(), LevelDanger)
		return err
	}

	if !res.OK {
		p.deps.Notifier.Notify(res.Error, LevelWarning)
		return nil
	}

	p.deps.Logger.Info("✅ [CreatePage] User created", "user_id", res.Value.ID)
	p.deps.Notifier.Notify(p.deps.Validator.Text("user_created"), LevelSuccess)
	return nil
}
