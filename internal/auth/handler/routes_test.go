package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AnthoniusHendriyanto/course-service/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/course-service/internal/auth/handler"
	"github.com/AnthoniusHendriyanto/course-service/pkg/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegisterRoutes verifies that the account routes are mounted per class.
func TestRegisterRoutes(t *testing.T) {
	classes := map[domain.PrincipalClass]string{
		domain.PrincipalAdmin: constant.AdminCookieName,
		domain.PrincipalUser:  constant.UserCookieName,
	}

	for class, cookieName := range classes {
		deps := setup(t, class, handler.Options{CookieName: cookieName})

		for _, action := range []string{"signup", "login", "logout"} {
			path := fmt.Sprintf("/api/v1/%s/%s", class, action)
			t.Run(fmt.Sprintf("POST_%s_exists", path), func(t *testing.T) {
				resp, err := deps.app.Test(httptest.NewRequest(http.MethodPost, path, nil))
				require.NoError(t, err)

				// We only care that the route exists. A 404 means it doesn't.
				// The handlers answer 400 for a missing body or session.
				assert.NotEqual(t, http.StatusNotFound, resp.StatusCode)
			})
		}

		t.Run(fmt.Sprintf("GET_%s_login_not_mounted", class), func(t *testing.T) {
			resp, err := deps.app.Test(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/%s/login", class), nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		})
	}
}
