package providerfakes

import (
	"context"
	"net/url"
	"sync"

	"github.com/datascope-labs/authrelay/provider"
)

var _ provider.Provider = (*FakeProvider)(nil)

// ExchangeCall records the arguments of a single Exchange invocation.
type ExchangeCall struct {
	Code        string
	RedirectURI string
	Verifier    string
}

// FakeProvider is a test double for provider.Provider. Configure Tokens /
// ExchangeErr before use; recorded calls are available afterwards.
type FakeProvider struct {
	Tokens      provider.TokenResult
	ExchangeErr error
	AuthURLErr  error

	lock          sync.Mutex
	exchangeCalls []ExchangeCall
}

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{}
}

func (p *FakeProvider) AuthorizationURL(redirectURI, state, codeChallenge string) (string, error) {
	if p.AuthURLErr != nil {
		return "", p.AuthURLErr
	}
	params := url.Values{
		"response_type":  {"code"},
		"redirect_uri":   {redirectURI},
		"state":          {state},
		"code_challenge": {codeChallenge},
	}
	return "https://provider.test/authorize?" + params.Encode(), nil
}

func (p *FakeProvider) Exchange(_ context.Context, code, redirectURI, verifier string) (provider.TokenResult, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.exchangeCalls = append(p.exchangeCalls, ExchangeCall{Code: code, RedirectURI: redirectURI, Verifier: verifier})
	if p.ExchangeErr != nil {
		return provider.TokenResult{}, p.ExchangeErr
	}
	return p.Tokens, nil
}

// ExchangeCallCount reports how many times Exchange was invoked.
func (p *FakeProvider) ExchangeCallCount() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return len(p.exchangeCalls)
}

// ExchangeArgsForCall returns the recorded arguments of call i.
func (p *FakeProvider) ExchangeArgsForCall(i int) ExchangeCall {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.exchangeCalls[i]
}
