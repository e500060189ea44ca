package chatcmder

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"learnlog/internal/domain"
	"learnlog/internal/usecase/chat"
)

var _ chat.HistoryResponder = (*recordingResponder)(nil)

type recordingResponder struct {
	prompts   []string
	histories [][]domain.Turn
	failOn    string
}

func (r *recordingResponder) GetResponseWithHistory(_ context.Context, prompt string, history []domain.Turn) (string, error) {
	r.prompts = append(r.prompts, prompt)
	r.histories = append(r.histories, append([]domain.Turn(nil), history...))
	if prompt == r.failOn {
		return "", errors.New("upstream down")
	}
	return strings.ToUpper(prompt), nil
}

func TestSessionKeepsHistoryAndStopsOnExit(t *testing.T) {
	r := &recordingResponder{failOn: "boom"}
	out := &bytes.Buffer{}
	in := strings.NewReader("hi\n\nboom\nbye\nexit\nnever\n")

	require.NoError(t, runSession(context.Background(), r, in, out, zap.NewNop()))

	assert.Equal(t, []string{"hi", "boom", "bye"}, r.prompts)
	assert.Empty(t, r.histories[0])
	assert.Equal(t, []domain.Turn{{User: "hi", Assistant: "HI"}}, r.histories[1])
	assert.Equal(t, []domain.Turn{{User: "hi", Assistant: "HI"}}, r.histories[2])

	assert.Contains(t, out.String(), "bot> HI")
	assert.Contains(t, out.String(), "error: upstream down")
	assert.Contains(t, out.String(), "bot> BYE")
	assert.NotContains(t, out.String(), "NEVER")
}

func TestSessionEndsOnEOF(t *testing.T) {
	r := &recordingResponder{}
	require.NoError(t, runSession(context.Background(), r, strings.NewReader("only\n"), &bytes.Buffer{}, zap.NewNop()))
	assert.Equal(t, []string{"only"}, r.prompts)
}
