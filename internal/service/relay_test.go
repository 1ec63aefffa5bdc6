package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	mu      sync.Mutex
	out     string
	err     error
	prompts []string
}

func (s *stubProvider) Generate(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	return s.out, s.err
}

func (s *stubProvider) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

// echoProvider responde com a última linha do prompt recebido.
type echoProvider struct{}

func (echoProvider) Generate(_ context.Context, prompt string) (string, error) {
	lines := strings.Split(prompt, "\n")
	return lines[len(lines)-1], nil
}

func newTestRelay(t *testing.T, p Provider) *Relay {
	t.Helper()
	r, err := NewRelay(p, "Ok!")
	require.NoError(t, err)
	return r
}

func TestNewRelay_ValidatesDependencies(t *testing.T) {
	_, err := NewRelay(nil, "Ok!")
	require.Error(t, err)

	_, err = NewRelay(&stubProvider{}, "  ")
	require.Error(t, err)
}

func TestReply_EmptyMessageNeverReachesProvider(t *testing.T) {
	p := &stubProvider{out: "should not be used"}
	r := newTestRelay(t, p)

	for _, msg := range []string{"", " ", "\t\n", "   \r\n  "} {
		_, err := r.Reply(context.Background(), msg)
		require.ErrorIs(t, err, ErrEmptyMessage, "message=%q", msg)
	}
	require.Zero(t, p.calls())
}

func TestReply_PassThrough(t *testing.T) {
	p := &stubProvider{out: "  Hi there\n"}
	r := newTestRelay(t, p)

	reply, err := r.Reply(context.Background(), "  Olá, meu nome é Ana  ")
	require.NoError(t, err)
	require.Equal(t, "Hi there", reply)

	require.Len(t, p.prompts, 1)
	require.True(t, strings.HasPrefix(p.prompts[0], SystemPrompt))
	require.True(t, strings.HasSuffix(p.prompts[0], "\n\nMensagem do cliente: Olá, meu nome é Ana"))
}

func TestReply_DefaultReplyOnEmptyCompletion(t *testing.T) {
	for _, out := range []string{"", "   ", "\n"} {
		r := newTestRelay(t, &stubProvider{out: out})
		reply, err := r.Reply(context.Background(), "oi")
		require.NoError(t, err)
		require.Equal(t, "Ok!", reply)
	}
}

func TestReply_ConfiguredDefaultReply(t *testing.T) {
	r, err := NewRelay(&stubProvider{}, "Recebido!")
	require.NoError(t, err)

	reply, err := r.Reply(context.Background(), "oi")
	require.NoError(t, err)
	require.Equal(t, "Recebido!", reply)
}

func TestReply_ProviderErrorIsWrapped(t *testing.T) {
	cause := errors.New("googleapi: Error 429: quota exceeded")
	p := &stubProvider{err: cause}
	r := newTestRelay(t, p)

	_, err := r.Reply(context.Background(), "oi")
	require.ErrorIs(t, err, ErrProvider)
	require.ErrorIs(t, err, cause)
	require.Equal(t, 1, p.calls())
}

func TestReply_Stateless(t *testing.T) {
	r := newTestRelay(t, echoProvider{})

	first, err := r.Reply(context.Background(), "primeira mensagem")
	require.NoError(t, err)
	second, err := r.Reply(context.Background(), "segunda mensagem")
	require.NoError(t, err)

	require.Equal(t, "Mensagem do cliente: primeira mensagem", first)
	require.Equal(t, "Mensagem do cliente: segunda mensagem", second)
}

func TestSystemPrompt_CoversIntakeFields(t *testing.T) {
	for _, field := range []string{"nome", "WhatsApp/telefone", "serviço desejado", "urgência", "cidade"} {
		require.Contains(t, SystemPrompt, field)
	}
	require.Contains(t, SystemPrompt, "hoje/esta semana/semana que vem")
}
