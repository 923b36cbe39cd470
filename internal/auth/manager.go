package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/exercise-hub/internal/session"
	"github.com/yourusername/exercise-hub/internal/view"
)

const (
	// SessionCookieName は署名付きセッションクッキーの名前です。
	SessionCookieName = "ex_session"
	sessionKeyID      = "sid"
)

// ContextSessionKey は、ゲートを通過したセッションをハンドラーへ渡すためのキーです。
const ContextSessionKey = "auth.session"

// Manager は認証まわりの HTTP ハンドラーをまとめた構造体です。
type Manager struct {
	service  *Service
	sessions *session.Manager
	events   EventRecorder
	logger   *slog.Logger
}

// NewManager は認証マネージャーを作成します。
func NewManager(service *Service, sessions *session.Manager) *Manager {
	return &Manager{
		service:  service,
		sessions: sessions,
		events:   service.events,
		logger:   service.logger,
	}
}

// SessionMaxAgeSeconds はクッキーの MaxAge に利用する秒数を返します。
func (m *Manager) SessionMaxAgeSeconds() int {
	return int(m.sessions.MaxAge().Seconds())
}

// SignupForm は GET /createUser のハンドラーです。
func (m *Manager) SignupForm(c *gin.Context) {
	c.HTML(http.StatusOK, view.Signup, nil)
}

// SubmitUser は POST /submitUser のハンドラーです。
func (m *Manager) SubmitUser(c *gin.Context) {
	ctx := c.Request.Context()
	sess, err := m.service.Register(ctx, c.PostForm("name"), c.PostForm("email"), c.PostForm("password"))
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			m.logger.InfoContext(ctx, "registration rejected", "field", verr.Field, "reason", verr.Reason)
			c.Redirect(http.StatusFound, "/createUser")
			return
		}
		m.internalError(c, "registration failed", err)
		return
	}

	if err := m.bind(c, sess); err != nil {
		m.internalError(c, "failed to bind session", err)
		return
	}
	c.HTML(http.StatusOK, view.Registered, nil)
}

// LoginForm は GET /login のハンドラーです。
func (m *Manager) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, view.Login, nil)
}

// Login は POST /loggingin のハンドラーです。
func (m *Manager) Login(c *gin.Context) {
	sess, err := m.service.Login(c.Request.Context(), c.PostForm("email"), c.PostForm("password"))
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.Redirect(http.StatusFound, "/login")
			return
		}
		m.internalError(c, "login failed", err)
		return
	}

	if err := m.bind(c, sess); err != nil {
		m.internalError(c, "failed to bind session", err)
		return
	}
	c.Redirect(http.StatusFound, "/loggedin")
}

// Landing は GET /loggedin と GET /member のハンドラーです。RequireLogin の後に置きます。
func (m *Manager) Landing(c *gin.Context) {
	sess, ok := CurrentSession(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.HTML(http.StatusOK, view.Welcome, view.WelcomeData{Name: sess.Name})
}

// Logout は GET /logout のハンドラーです。
func (m *Manager) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	if err := m.sessions.Destroy(ctx, readSessionID(c)); err != nil {
		m.internalError(c, "failed to destroy session", err)
		return
	}
	if err := clearCookie(c); err != nil {
		m.internalError(c, "failed to clear session cookie", err)
		return
	}
	m.events.AuthEvent(EventLogout)
	c.Redirect(http.StatusFound, "/")
}

// RequireLogin はセッションを検証するミドルウェアを返します。
// 検証に失敗した場合は /login へリダイレクトします。
func (m *Manager) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sess, err := m.sessions.Validate(ctx, readSessionID(c))
		if err != nil {
			if session.IsAuthFailure(err) {
				m.events.AuthEvent(EventGateRejected)
				if !errors.Is(err, session.ErrNotAuthenticated) {
					m.logger.InfoContext(ctx, "session rejected", "reason", err.Error())
					_ = clearCookie(c)
				}
				c.Redirect(http.StatusFound, "/login")
				c.Abort()
				return
			}
			m.internalError(c, "failed to validate session", err)
			c.Abort()
			return
		}

		c.Set(ContextSessionKey, sess)
		c.Next()
	}
}

// CurrentSession はゲートを通過したセッションを返します。
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(ContextSessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok && sess != nil
}

// bind は新しいセッション ID をクッキーに載せ、それまでの ID を破棄します。
func (m *Manager) bind(c *gin.Context, sess *session.Session) error {
	ctx := c.Request.Context()
	if old := readSessionID(c); old != "" && old != sess.ID {
		if err := m.sessions.Destroy(ctx, old); err != nil {
			m.logger.WarnContext(ctx, "failed to destroy previous session", "error", err)
		}
	}
	cookie := sessions.Default(c)
	cookie.Set(sessionKeyID, sess.ID)
	return cookie.Save()
}

func (m *Manager) internalError(c *gin.Context, msg string, err error) {
	m.logger.ErrorContext(c.Request.Context(), msg, "error", err, "path", c.Request.URL.Path)
	c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

func readSessionID(c *gin.Context) string {
	id, _ := sessions.Default(c).Get(sessionKeyID).(string)
	return id
}

func clearCookie(c *gin.Context) error {
	cookie := sessions.Default(c)
	cookie.Clear()
	cookie.Options(sessions.Options{Path: "/", MaxAge: -1})
	return cookie.Save()
}
