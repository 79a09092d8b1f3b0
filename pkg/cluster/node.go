package cluster

import (
	"bufio"
	"kafkaperf/pkg/app/pretty_log"
	"strings"
	"time"

	"github.com/melbahja/goph"
	"github.com/pkg/errors"
	"github.com/pkg/sftp"
)

// Node is one cluster host. It executes remote commands over SSH and is
// returned to the allocator with Free once a run has finished with it.
type Node struct {
	hostname string
	username string
	password string

	cluster *Cluster
	inUse   bool
}

func (n *Node) Hostname() string {
	return n.hostname
}

// Free returns the node to the allocator
func (n *Node) Free() {
	n.cluster.release(n)
}

// connect dials the node, retrying while the host is still booting its sshd
func (n *Node) connect() (*goph.Client, error) {
	for {
		client, err := goph.NewUnknown(n.username, n.hostname, goph.Password(n.password))
		if err != nil {
			if strings.Contains(err.Error(), "ssh: handshake failed:") {
				time.Sleep(100 * time.Millisecond)
				continue
			}

			return nil, errors.Wrapf(err, "connect to %s", n.hostname)
		}

		return client, nil
	}
}

// Capture starts the command and returns its output one line at a time.
// Errors opening the channel or starting the remote process are returned
// immediately; once started, the channel closes when the process exits.
func (n *Node) Capture(command string) (<-chan string, error) {
	client, err := n.connect()
	if err != nil {
		return nil, err
	}

	session, err := client.NewSession()
	if err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "open session on %s", n.hostname)
	}

	stdout, err := session.StdoutPipe()
	if err != nil {
		_ = session.Close()
		_ = client.Close()
		return nil, errors.Wrapf(err, "open stdout pipe on %s", n.hostname)
	}

	if err := session.Start(command); err != nil {
		_ = session.Close()
		_ = client.Close()
		return nil, errors.Wrapf(err, "start %q on %s", command, n.hostname)
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		defer func() {
			_ = session.Close()
			_ = client.Close()
		}()

		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			lines <- scanner.Text()
		}

		if err := session.Wait(); err != nil {
			pretty_log.Debug("remote process on %s exited: %s", n.hostname, err.Error())
		}
	}()

	return lines, nil
}

// Run executes the command to completion and returns its output lines
func (n *Node) Run(command string) ([]string, error) {
	client, err := n.connect()
	if err != nil {
		return nil, err
	}
	defer func(client *goph.Client) {
		if err := client.Close(); err != nil {
			pretty_log.Debug("close ssh client for %s: %s", n.hostname, err.Error())
		}
	}(client)

	out, err := client.Run(command)
	if err != nil {
		if len(out) > 0 {
			return nil, errors.Wrapf(err, "run %q on %s. details: %s", command, n.hostname, strings.TrimSpace(string(out)))
		}
		return nil, errors.Wrapf(err, "run %q on %s", command, n.hostname)
	}

	return strings.Split(strings.TrimRight(string(out), "\n"), "\n"), nil
}

// CreateFile writes content to path on the node
func (n *Node) CreateFile(path string, content string) error {
	client, err := n.connect()
	if err != nil {
		return err
	}
	defer func(client *goph.Client) {
		if err := client.Close(); err != nil {
			pretty_log.Debug("close ssh client for %s: %s", n.hostname, err.Error())
		}
	}(client)

	sf, err := client.NewSftp()
	if err != nil {
		return errors.Wrapf(err, "open sftp on %s", n.hostname)
	}
	defer func(sf *sftp.Client) {
		_ = sf.Close()
	}(sf)

	return writeRemoteFile(sf, path, content)
}

func writeRemoteFile(sf *sftp.Client, path string, content string) error {
	f, err := sf.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}

	if _, err := f.Write([]byte(content)); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "write %s", path)
	}

	return f.Close()
}
