package cluster

import (
	"kafkaperf/pkg/app"
	"sync"

	"github.com/pkg/errors"
)

// Cluster hands out nodes to benchmark runs. Hosts are allocated in
// configuration order and returned with Node.Free.
type Cluster struct {
	mut   sync.Mutex
	nodes []*Node
}

func New(hosts []string, username, password string) *Cluster {
	c := &Cluster{}
	for _, host := range hosts {
		c.nodes = append(c.nodes, &Node{
			hostname: host,
			username: username,
			password: password,
			cluster:  c,
		})
	}
	return c
}

func FromConfig() *Cluster {
	return New(app.Config.Cluster.Hosts, app.Config.Cluster.Username, app.Config.Cluster.Password)
}

// Allocate reserves the first n free nodes, in host order.
func (c *Cluster) Allocate(n int) ([]*Node, error) {
	c.mut.Lock()
	defer c.mut.Unlock()

	var free []*Node
	for _, node := range c.nodes {
		if !node.inUse {
			free = append(free, node)
		}
		if len(free) == n {
			break
		}
	}

	if len(free) < n {
		return nil, errors.Errorf("requested %d nodes but only %d are free", n, len(free))
	}

	for _, node := range free {
		node.inUse = true
	}
	return free, nil
}

func (c *Cluster) release(n *Node) {
	c.mut.Lock()
	n.inUse = false
	c.mut.Unlock()
}
