package presenter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"dockify/internal/domain"
)

func TestLoginValidation(t *testing.T) {
	auth := &fakeAuth{}
	p := NewLoginPresenter(auth, nil)
	defer p.Close()

	assert.False(t, p.State().IsLoginEnabled())

	p.Dispatch(EmailChanged{Email: "nope"})
	assert.Equal(t, "Please enter a valid email", p.State().EmailError)
	p.Dispatch(EmailChanged{Email: "a@b.kz"})
	assert.Empty(t, p.State().EmailError)
	assert.False(t, p.State().IsLoginEnabled())

	p.Dispatch(Submit{})
	p.Wait()
	assert.Equal(t, "Password is required", p.State().PasswordError)
	assert.Zero(t, auth.loginCalls)

	p.Dispatch(PasswordChanged{Password: "x"})
	assert.True(t, p.State().IsLoginEnabled())
}

func TestLoginSubmit(t *testing.T) {
	auth := &fakeAuth{}
	p := NewLoginPresenter(auth, nil)
	defer p.Close()

	p.Dispatch(EmailChanged{Email: "a@b.kz"})
	p.Dispatch(PasswordChanged{Password: "secret"})
	p.Dispatch(Submit{})
	p.Wait()

	assert.Equal(t, 1, auth.loginCalls)
	assert.Equal(t, Idle, p.State().LoadingState)
	assert.Equal(t, []Effect{{Kind: NavigateToHome}}, drain(p.Effects()))
}

func TestLoginFailure(t *testing.T) {
	auth := &fakeAuth{loginErr: domain.AuthInvalidCredentials}
	p := NewLoginPresenter(auth, nil)
	defer p.Close()

	p.Dispatch(EmailChanged{Email: "a@b.kz"})
	p.Dispatch(PasswordChanged{Password: "wrong"})
	p.Dispatch(Submit{})
	p.Wait()

	assert.Equal(t, "Invalid email or password.", p.State().Error)
	assert.Equal(t, []Effect{{Kind: ShowSnackbar, Message: "Invalid email or password."}}, drain(p.Effects()))

	p.Dispatch(EmailChanged{Email: "a@b.kz"})
	assert.Empty(t, p.State().Error, "editing clears the error")
}

func TestLoginNavigation(t *testing.T) {
	p := NewLoginPresenter(&fakeAuth{}, nil)
	defer p.Close()

	p.Dispatch(GoToRegister{})
	p.Dispatch(ForgotPassword{})
	p.Dispatch(GoToLogin{})
	assert.Equal(t, []Effect{{Kind: NavigateToRegister}, {Kind: NavigateToForgotPassword}}, drain(p.Effects()))
}

func TestRegisterValidation(t *testing.T) {
	auth := &fakeAuth{}
	p := NewRegisterPresenter(auth, nil)
	defer p.Close()

	p.Dispatch(PasswordChanged{Password: "123"})
	assert.Equal(t, "Password must be at least 6 characters", p.State().PasswordError)

	p.Dispatch(PasswordChanged{Password: "123456"})
	p.Dispatch(ConfirmPasswordChanged{ConfirmPassword: "12345"})
	assert.Equal(t, "Passwords do not match", p.State().ConfirmPasswordError)

	p.Dispatch(PasswordChanged{Password: "12345"})
	assert.Equal(t, "Password must be at least 6 characters", p.State().PasswordError)
	assert.Empty(t, p.State().ConfirmPasswordError, "confirmation is rechecked against the new password")

	p.Dispatch(Submit{})
	p.Wait()
	st := p.State()
	assert.Equal(t, "Email is required", st.EmailError)
	assert.Equal(t, "Username is required", st.UsernameError)
	assert.False(t, st.IsRegisterEnabled())
	assert.Zero(t, auth.registerCalls)
}

func fillRegisterForm(p *RegisterPresenter) {
	p.Dispatch(EmailChanged{Email: "dias@dockify.kz"})
	p.Dispatch(PasswordChanged{Password: "secret1"})
	p.Dispatch(ConfirmPasswordChanged{ConfirmPassword: "secret1"})
	p.Dispatch(UsernameChanged{Username: "dias"})
	p.Dispatch(FirstNameChanged{FirstName: "Dias"})
}

func TestRegisterSubmit(t *testing.T) {
	auth := &fakeAuth{}
	p := NewRegisterPresenter(auth, nil)
	defer p.Close()

	fillRegisterForm(p)
	assert.True(t, p.State().IsRegisterEnabled())
	p.Dispatch(Submit{})
	p.Wait()

	assert.Equal(t, 1, auth.registerCalls)
	assert.Equal(t, []Effect{
		{Kind: ShowSuccessMessage, Message: "Registration successful! Please login."},
		{Kind: NavigateToLogin},
	}, drain(p.Effects()))
}

func TestRegisterUserExists(t *testing.T) {
	auth := &fakeAuth{registerErr: domain.AuthUserAlreadyExists}
	p := NewRegisterPresenter(auth, nil)
	defer p.Close()

	fillRegisterForm(p)
	p.Dispatch(Submit{})
	p.Wait()

	assert.Equal(t, "An account with this email already exists.", p.State().Error)
	assert.Equal(t, Idle, p.State().LoadingState)
	assert.Equal(t, []Effect{{Kind: ShowSnackbar, Message: "An account with this email already exists."}}, drain(p.Effects()))
}

func TestStoreSubscribeAndClose(t *testing.T) {
	s := newStore(0, nil)
	var seen []int
	s.Subscribe(func(v int) { seen = append(seen, v) })
	s.update(func(v *int) { *v = 4 })
	s.update(func(v *int) { *v++ })
	assert.Equal(t, []int{4, 5}, seen)
	assert.Equal(t, 5, s.State())

	s.Close()
	ran := false
	s.launch(func(context.Context) { ran = true })
	s.Wait()
	assert.False(t, ran, "closed scope launches nothing")
}
