package fetch

import (
	"math/rand"
	"sync"
)

// AgentPool hands out User-Agent strings for outgoing requests. A fixed
// primary agent can be supplemented with rotating browser agents.
type AgentPool struct {
	mu     sync.Mutex
	agents []string
	rng    *rand.Rand
}

func NewAgentPool(primary string, seed int64) *AgentPool {
	agents := []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/107.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/107.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/107.0.0.0 Safari/537.36",
	}
	if primary != "" {
		agents = []string{primary}
	}
	return &AgentPool{
		agents: agents,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Get returns a user agent string, random when more than one is configured.
func (p *AgentPool) Get() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.agents) == 1 {
		return p.agents[0]
	}
	return p.agents[p.rng.Intn(len(p.agents))]
}
