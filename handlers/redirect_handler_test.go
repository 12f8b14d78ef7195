package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go-link-shortener/services"
	"go-link-shortener/services/mocks"
	"go-link-shortener/storage"
	"go-link-shortener/types"
	"go.uber.org/zap"
)

func TestRedirectLink(t *testing.T) {
	tests := []struct {
		name           string
		slug           string
		mockResult     types.Link
		mockErr        error
		expectedStatus int
		expectedURL    string
		expectedBody   string
	}{
		{
			name:           "Valid slug",
			slug:           "abc1234",
			mockResult:     types.Link{Slug: "abc1234", URL: "http://example.com", VisitCount: 1},
			expectedStatus: http.StatusFound,
			expectedURL:    "http://example.com",
		},
		{
			name:           "Stored URL without scheme separator",
			slug:           "noschem",
			mockResult:     types.Link{Slug: "noschem", URL: "https//foo.com/x", VisitCount: 1},
			expectedStatus: http.StatusFound,
			expectedURL:    "https//foo.com/x",
		},
		{
			name:           "Stored URL that is only a prefix",
			slug:           "prefix1",
			mockResult:     types.Link{Slug: "prefix1", URL: "httpfoo", VisitCount: 1},
			expectedStatus: http.StatusFound,
			expectedURL:    "httpfoo",
		},
		{
			name:           "Slug not found",
			slug:           "notfoun",
			mockErr:        services.ErrLinkNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody:   "URL not found.",
		},
		{
			name:           "Service error",
			slug:           "error12",
			mockErr:        errors.New("service error"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Redirection error.",
		},
		{
			name:           "Request timeout",
			slug:           "timeout",
			mockErr:        context.DeadlineExceeded,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Redirection error.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.MockLinkService)
			mockService.On("ResolveLink", mock.Anything, tt.slug).Return(tt.mockResult, tt.mockErr).Once()
			handler := setupTestHandler(t, mockService)

			router := gin.New()
			router.GET("/:slug", handler.RedirectLink)

			req, err := http.NewRequest(http.MethodGet, "/"+tt.slug, nil)
			require.NoError(t, err)
			resp := httptest.NewRecorder()

			router.ServeHTTP(resp, req)

			assert.Equal(t, tt.expectedStatus, resp.Code)
			if tt.expectedStatus == http.StatusFound {
				assert.Equal(t, tt.expectedURL, resp.Header().Get("Location"))
			} else {
				assert.Equal(t, tt.expectedBody, resp.Body.String())
				assert.Contains(t, resp.Header().Get("Content-Type"), "text/plain")
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestRedirectLink_LocationIsStoredURL(t *testing.T) {
	store := storage.NewInMemoryStorage(zap.NewNop())
	stored := map[string]string{
		"abcdefg": "https//foo.com/x",
		"hijklmn": "httpfoo",
		"opqrstu": "https://example.com/a?b=c",
	}
	for code, url := range stored {
		require.NoError(t, store.Create(context.Background(), types.Link{Slug: code, URL: url}))
	}

	handler := setupTestHandler(t, services.NewLinkService(store, 3, zap.NewNop()))
	router := gin.New()
	RegisterRoutes(router, handler, zap.NewNop())

	for code, url := range stored {
		req, err := http.NewRequest(http.MethodGet, "/"+code, nil)
		require.NoError(t, err)
		resp := httptest.NewRecorder()

		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusFound, resp.Code, code)
		assert.Equal(t, url, resp.Header().Get("Location"), code)
	}
}
