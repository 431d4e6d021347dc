package cmd

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/docent/internal/domain"
	domainmocks "github.com/mouse-blink/docent/internal/domain/mocks"
)

func TestViewCmd(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	stubWorkflow(t, mockWorkflow)

	mockWorkflow.On("View", mock.MatchedBy(func(args domain.ViewArgs) bool {
		return args.File == "loading.py"
	})).Return(nil)

	err := newTestRootCmd("view", "loading.py").Execute()
	require.NoError(t, err)
}

func TestViewCmd_RequiresFile(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	stubWorkflow(t, mockWorkflow)

	err := newTestRootCmd("view").Execute()
	require.Error(t, err)
	mockWorkflow.AssertNotCalled(t, "View", mock.Anything)
}

func TestViewCmd_UnknownFile(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	stubWorkflow(t, mockWorkflow)

	mockWorkflow.On("View", mock.Anything).Return(domain.ErrUnknownFile)

	err := newTestRootCmd("view", "zzzz").Execute()
	require.ErrorIs(t, err, domain.ErrUnknownFile)
}
