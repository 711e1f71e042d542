package ai

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"
)

var namePrefixes = []string{"Robo", "Clever", "Lucky", "Shadow", "Iron", "Swift"}
var nameSuffixes = []string{"Ming", "Hong", "Gang", "Lee", "Wang", "Chan", "Hua"}

// Instance represents an active AI seated at the table.
type Instance struct {
	PlayerID string
	Name     string
	Policy   Policy
	Brain    BrainDecider
}

// Manager owns AI lifecycle: minting seat IDs, seeding brains, and
// answering "is this an AI" for the orchestrator.
type Manager struct {
	mu        sync.RWMutex
	instances map[string]*Instance
	rng       *rand.Rand
	nextID    uint64
}

func NewManager(seed int64) *Manager {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Manager{
		instances: make(map[string]*Instance),
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Spawn creates a new AI instance. The caller still has to seat it.
func (m *Manager) Spawn(policy Policy) *Instance {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := fmt.Sprintf("ai-%d", m.nextID)
	name := fmt.Sprintf("%s %s",
		namePrefixes[m.rng.Intn(len(namePrefixes))],
		nameSuffixes[m.rng.Intn(len(nameSuffixes))])

	inst := &Instance{
		PlayerID: id,
		Name:     name,
		Policy:   policy,
		Brain:    NewRuleBrain(policy, name, m.rng.Int63()),
	}
	m.instances[id] = inst
	log.Printf("[AI] Spawned %s (%s, %s)", name, id, policy)
	return inst
}

// Instance returns the AI for a seat ID, or nil.
func (m *Manager) Instance(id string) *Instance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.instances[id]
}

// IsAI checks whether a seat ID belongs to an AI.
func (m *Manager) IsAI(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.instances[id] != nil
}

// Remove drops an AI from tracking.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	inst := m.instances[id]
	delete(m.instances, id)
	m.mu.Unlock()

	if inst != nil {
		log.Printf("[AI] Removed %s (%s)", inst.Name, id)
	}
}

// All returns the tracked instances in no particular order.
func (m *Manager) All() []*Instance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Instance, 0, len(m.instances))
	for _, inst := range m.instances {
		out = append(out, inst)
	}
	return out
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.instances)
}
