package mocks

import (
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockLinkHandler struct {
	mock.Mock
}

func (m *MockLinkHandler) CreateLink(c *gin.Context) {
	m.Called(c)
}

func (m *MockLinkHandler) RedirectLink(c *gin.Context) {
	m.Called(c)
}

func (m *MockLinkHandler) HealthCheck(c *gin.Context) {
	m.Called(c)
}
