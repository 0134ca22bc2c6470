package presenter

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"dockify/internal/app"
	"dockify/internal/domain"
)

// FormAction is an intent on the sign-in or registration form. Each form
// ignores the actions it has no field for.
type FormAction interface {
	formAction()
}

// Form actions.
type (
	EmailChanged           struct{ Email string }
	PasswordChanged        struct{ Password string }
	ConfirmPasswordChanged struct{ ConfirmPassword string }
	UsernameChanged        struct{ Username string }
	FirstNameChanged       struct{ FirstName string }
	LastNameChanged        struct{ LastName string }
	Submit                 struct{}
	GoToRegister           struct{}
	GoToLogin              struct{}
	ForgotPassword         struct{}
	DismissError           struct{}
)

func (EmailChanged) formAction()           {}
func (PasswordChanged) formAction()        {}
func (ConfirmPasswordChanged) formAction() {}
func (UsernameChanged) formAction()        {}
func (FirstNameChanged) formAction()       {}
func (LastNameChanged) formAction()        {}
func (Submit) formAction()                 {}
func (GoToRegister) formAction()           {}
func (GoToLogin) formAction()              {}
func (ForgotPassword) formAction()         {}
func (DismissError) formAction()           {}

const msgRegistered = "Registration successful! Please login."

func validateEmail(email string) string {
	switch {
	case strings.TrimSpace(email) == "":
		return "Email is required"
	case !app.ValidEmail(email):
		return "Please enter a valid email"
	}
	return ""
}

func validatePassword(password string) string {
	if strings.TrimSpace(password) == "" {
		return "Password is required"
	}
	return ""
}

func validateNewPassword(password string) string {
	if msg := validatePassword(password); msg != "" {
		return msg
	}
	if len(password) < app.MinPasswordLength {
		return fmt.Sprintf("Password must be at least %d characters", app.MinPasswordLength)
	}
	return ""
}

func validateConfirmPassword(confirm, password string) string {
	switch {
	case strings.TrimSpace(confirm) == "":
		return "Please confirm your password"
	case confirm != password:
		return "Passwords do not match"
	}
	return ""
}

func validateUsername(username string) string {
	if strings.TrimSpace(username) == "" {
		return "Username is required"
	}
	return ""
}

// LoginState is the snapshot of the sign-in form.
type LoginState struct {
	Email         string
	Password      string
	EmailError    string
	PasswordError string
	LoadingState  LoadingState
	Error         string
}

// IsLoginEnabled reports whether the form may be submitted.
func (s LoginState) IsLoginEnabled() bool {
	return strings.TrimSpace(s.Email) != "" && strings.TrimSpace(s.Password) != "" &&
		s.EmailError == "" && s.PasswordError == "" && s.LoadingState != Loading
}

// LoginPresenter drives the sign-in form.
type LoginPresenter struct {
	*store[LoginState]
	auth AuthUseCases
}

// NewLoginPresenter creates a LoginPresenter.
func NewLoginPresenter(auth AuthUseCases, log *zap.Logger) *LoginPresenter {
	return &LoginPresenter{store: newStore(LoginState{}, log), auth: auth}
}

// Dispatch handles one action.
func (p *LoginPresenter) Dispatch(a FormAction) {
	switch a := a.(type) {
	case EmailChanged:
		p.update(func(st *LoginState) {
			st.Email = a.Email
			st.EmailError = validateEmail(a.Email)
			st.Error = ""
		})
	case PasswordChanged:
		p.update(func(st *LoginState) {
			st.Password = a.Password
			st.PasswordError = validatePassword(a.Password)
			st.Error = ""
		})
	case Submit:
		p.login()
	case GoToRegister:
		p.emit(Effect{Kind: NavigateToRegister})
	case ForgotPassword:
		p.emit(Effect{Kind: NavigateToForgotPassword})
	case DismissError:
		p.update(func(st *LoginState) { st.Error = "" })
	}
}

func (p *LoginPresenter) login() {
	st := p.State()
	emailErr, passErr := validateEmail(st.Email), validatePassword(st.Password)
	if emailErr != "" || passErr != "" {
		p.update(func(st *LoginState) {
			st.EmailError = emailErr
			st.PasswordError = passErr
		})
		return
	}
	p.update(func(st *LoginState) { st.LoadingState = Loading })

	p.launch(func(ctx context.Context) {
		res, err := p.auth.Login(ctx, st.Email, st.Password)
		if err != nil {
			return
		}
		if res.IsSuccess() {
			p.update(func(st *LoginState) { st.LoadingState = Idle })
			p.emit(Effect{Kind: NavigateToHome})
			return
		}
		msg := UserMessage(res.Err())
		p.update(func(st *LoginState) {
			st.LoadingState = Idle
			st.Error = msg
		})
		p.emit(Effect{Kind: ShowSnackbar, Message: msg})
	})
}

// RegisterState is the snapshot of the registration form.
type RegisterState struct {
	Email                string
	Password             string
	ConfirmPassword      string
	Username             string
	FirstName            string
	LastName             string
	EmailError           string
	PasswordError        string
	ConfirmPasswordError string
	UsernameError        string
	LoadingState         LoadingState
	Error                string
}

// IsRegisterEnabled reports whether the form may be submitted.
func (s RegisterState) IsRegisterEnabled() bool {
	return strings.TrimSpace(s.Email) != "" && strings.TrimSpace(s.Password) != "" &&
		strings.TrimSpace(s.ConfirmPassword) != "" && strings.TrimSpace(s.Username) != "" &&
		s.EmailError == "" && s.PasswordError == "" &&
		s.ConfirmPasswordError == "" && s.UsernameError == "" &&
		s.LoadingState != Loading
}

// RegisterPresenter drives the registration form.
type RegisterPresenter struct {
	*store[RegisterState]
	auth AuthUseCases
}

// NewRegisterPresenter creates a RegisterPresenter.
func NewRegisterPresenter(auth AuthUseCases, log *zap.Logger) *RegisterPresenter {
	return &RegisterPresenter{store: newStore(RegisterState{}, log), auth: auth}
}

// Dispatch handles one action.
func (p *RegisterPresenter) Dispatch(a FormAction) {
	switch a := a.(type) {
	case EmailChanged:
		p.update(func(st *RegisterState) {
			st.Email = a.Email
			st.EmailError = validateEmail(a.Email)
			st.Error = ""
		})
	case PasswordChanged:
		p.update(func(st *RegisterState) {
			st.Password = a.Password
			st.PasswordError = validateNewPassword(a.Password)
			if st.ConfirmPassword != "" {
				st.ConfirmPasswordError = validateConfirmPassword(st.ConfirmPassword, a.Password)
			} else {
				st.ConfirmPasswordError = ""
			}
			st.Error = ""
		})
	case ConfirmPasswordChanged:
		p.update(func(st *RegisterState) {
			st.ConfirmPassword = a.ConfirmPassword
			st.ConfirmPasswordError = validateConfirmPassword(a.ConfirmPassword, st.Password)
			st.Error = ""
		})
	case UsernameChanged:
		p.update(func(st *RegisterState) {
			st.Username = a.Username
			st.UsernameError = validateUsername(a.Username)
			st.Error = ""
		})
	case FirstNameChanged:
		p.update(func(st *RegisterState) { st.FirstName = a.FirstName })
	case LastNameChanged:
		p.update(func(st *RegisterState) { st.LastName = a.LastName })
	case Submit:
		p.register()
	case GoToLogin:
		p.emit(Effect{Kind: NavigateToLogin})
	case DismissError:
		p.update(func(st *RegisterState) { st.Error = "" })
	}
}

func (p *RegisterPresenter) register() {
	st := p.State()
	emailErr := validateEmail(st.Email)
	passErr := validateNewPassword(st.Password)
	confirmErr := validateConfirmPassword(st.ConfirmPassword, st.Password)
	userErr := validateUsername(st.Username)
	if emailErr != "" || passErr != "" || confirmErr != "" || userErr != "" {
		p.update(func(st *RegisterState) {
			st.EmailError = emailErr
			st.PasswordError = passErr
			st.ConfirmPasswordError = confirmErr
			st.UsernameError = userErr
		})
		return
	}
	p.update(func(st *RegisterState) { st.LoadingState = Loading })

	p.launch(func(ctx context.Context) {
		res, err := p.auth.Register(ctx, domain.Registration{
			Email:     st.Email,
			Password:  st.Password,
			Username:  st.Username,
			FirstName: st.FirstName,
			LastName:  st.LastName,
		})
		if err != nil {
			return
		}
		if res.IsSuccess() {
			p.update(func(st *RegisterState) { st.LoadingState = Idle })
			p.emit(Effect{Kind: ShowSuccessMessage, Message: msgRegistered})
			p.emit(Effect{Kind: NavigateToLogin})
			return
		}
		msg := UserMessage(res.Err())
		p.update(func(st *RegisterState) {
			st.LoadingState = Idle
			st.Error = msg
		})
		p.emit(Effect{Kind: ShowSnackbar, Message: msg})
	})
}
