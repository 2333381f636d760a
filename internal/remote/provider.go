// Package remote provides an SFTP-backed filesystem metadata provider so
// a scan root of the form user@host:/path can be walked like a local one.
package remote

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net"
	"os"
	pathpkg "path"
	"strings"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// Config configures a remote connection.
type Config struct {
	// Target is user@host.
	Target string
	Port   int
	// BatchMode disables interactive prompts (key/agent auth only).
	BatchMode bool
	Timeout   time.Duration
}

// client is the subset of *sftp.Client the provider needs. Narrowed for
// fake-backed tests.
type client interface {
	ReadDir(string) ([]os.FileInfo, error)
	Stat(string) (os.FileInfo, error)
	RealPath(string) (string, error)
}

var dialContext = func(ctx context.Context, network, address string) (net.Conn, error) {
	var d net.Dialer
	return d.DialContext(ctx, network, address)
}

var sshNewClientConn = func(conn net.Conn, addr string, config *ssh.ClientConfig) (ssh.Conn, <-chan ssh.NewChannel, <-chan *ssh.Request, error) {
	return ssh.NewClientConn(conn, addr, config)
}

// FS walks a remote tree over the SFTP subsystem. It satisfies scan.FS
// with POSIX path semantics regardless of the local platform.
type FS struct {
	client client
	closer io.Closer
}

// Connect dials the remote target and returns a provider ready to walk.
// The caller owns Close.
func Connect(ctx context.Context, cfg Config) (*FS, error) {
	c, closer, err := dialSFTP(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &FS{client: c, closer: closer}, nil
}

// Close tears down the SFTP and SSH sessions.
func (f *FS) Close() error {
	if f.closer == nil {
		return nil
	}
	return f.closer.Close()
}

// ResolveRoot canonicalizes a remote root path before the walk starts, so
// folder rollups use the path the server actually visits.
func (f *FS) ResolveRoot(path string) string {
	clean := cleanRemotePath(path)
	if resolved, err := f.client.RealPath(clean); err == nil {
		return cleanRemotePath(resolved)
	}
	return clean
}

func (f *FS) Stat(path string) (fs.FileInfo, error) {
	return f.client.Stat(cleanRemotePath(path))
}

func (f *FS) ReadDir(path string) ([]fs.DirEntry, error) {
	infos, err := f.client.ReadDir(cleanRemotePath(path))
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}
	return entries, nil
}

func (f *FS) Join(dir, name string) string { return pathpkg.Join(dir, name) }
func (f *FS) Dir(path string) string       { return pathpkg.Dir(path) }
func (f *FS) Base(path string) string      { return pathpkg.Base(path) }

// SplitRoot splits an scp-style root spec "user@host:/path" into target
// and remote path. ok is false for plain local paths.
func SplitRoot(spec string) (target, remotePath string, ok bool) {
	if strings.HasPrefix(spec, "/") || strings.HasPrefix(spec, ".") {
		return "", "", false
	}
	at := strings.Index(spec, "@")
	colon := strings.Index(spec, ":")
	if at <= 0 || colon <= at+1 {
		return "", "", false
	}
	target = spec[:colon]
	remotePath = spec[colon+1:]
	if remotePath == "" {
		remotePath = "."
	}
	return target, remotePath, true
}

func cleanRemotePath(p string) string {
	if p == "" {
		return "."
	}
	clean := pathpkg.Clean(strings.ReplaceAll(p, "\\", "/"))
	if clean == "" {
		return "."
	}
	return clean
}

func dialSFTP(ctx context.Context, cfg Config) (client, io.Closer, error) {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, nil, fmt.Errorf("ssh port must be between 1 and 65535")
	}

	user, host, err := parseSSHTarget(cfg.Target)
	if err != nil {
		return nil, nil, err
	}

	hostCB, err := hostKeyCallback(host, cfg.Port, cfg.BatchMode)
	if err != nil {
		return nil, nil, err
	}

	auth, err := buildAuthMethods(user, host, cfg.BatchMode)
	if err != nil {
		return nil, nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	sshConfig := &ssh.ClientConfig{
		User:            user,
		Auth:            auth,
		HostKeyCallback: hostCB,
		Timeout:         timeout,
	}

	addr := net.JoinHostPort(host, fmt.Sprintf("%d", cfg.Port))
	sshClient, err := connectSSH(dialCtx, addr, sshConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("SSH connection failed: %w", err)
	}

	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		_ = sshClient.Close()
		return nil, nil, fmt.Errorf("cannot start SFTP subsystem: %w", err)
	}

	return sftpClient, &remoteCloser{ssh: sshClient, sftp: sftpClient}, nil
}

func connectSSH(ctx context.Context, addr string, config *ssh.ClientConfig) (*ssh.Client, error) {
	conn, err := dialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	// Ensure cancellation interrupts handshake/authentication.
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	c, chans, reqs, err := sshNewClientConn(conn, addr, config)
	close(done)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return ssh.NewClient(c, chans, reqs), nil
}

type remoteCloser struct {
	ssh  *ssh.Client
	sftp *sftp.Client
}

func (c *remoteCloser) Close() error {
	var retErr error
	if c.sftp != nil {
		if err := c.sftp.Close(); err != nil {
			retErr = err
		}
	}
	if c.ssh != nil {
		if err := c.ssh.Close(); err != nil && retErr == nil {
			retErr = err
		}
	}
	return retErr
}
