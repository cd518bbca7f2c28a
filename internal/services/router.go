package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lumina-home/lumina-console/internal/metrics"
	"github.com/lumina-home/lumina-console/internal/models"
	"github.com/lumina-home/lumina-console/pkg/lumina"
)

const (
	mainInfoCommand   = "_info"
	serverInfoCommand = "_server"
	hostInfoCommand   = "_info"
)

// Router turns commands into requests on the transport and classifies replies.
type Router struct {
	transport lumina.Transport
	trace     *Trace
}

func NewRouter(transport lumina.Transport, trace *Trace) *Router {
	return &Router{
		transport: transport,
		trace:     trace,
	}
}

func (r *Router) Trace() *Trace {
	return r.trace
}

// Execute runs cmd and returns the unwrapped result. Any failure is returned
// as a *models.CommandError.
func (r *Router) Execute(ctx context.Context, cmd models.Command) (json.RawMessage, error) {
	path := cmd.Path()

	r.trace.BeginCommand()
	r.trace.AppendStage("<<< " + path)

	var payload any
	if len(cmd.Args) > 0 {
		payload = cmd.Args
	}

	start := time.Now()
	resp, err := r.transport.Post(ctx, path, payload)
	metrics.CommandDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		cmdErr := toCommandError(path, err)
		r.fail(cmdErr)
		metrics.Commands.WithLabelValues("failure").Inc()
		return nil, cmdErr
	}

	r.trace.AppendStage(">>> " + string(resp.Body))

	if !resp.HasResult {
		cmdErr := &models.CommandError{
			Path:       path,
			StatusCode: resp.StatusCode,
			StatusText: "protocol violation",
			Err:        models.ErrProtocolViolation,
		}
		r.fail(cmdErr)
		metrics.Commands.WithLabelValues("protocol_violation").Inc()
		return nil, cmdErr
	}

	metrics.Commands.WithLabelValues("success").Inc()
	zap.S().Named("router").Debugw("command succeeded", "path", path, "request_id", resp.RequestID)

	return resp.Result, nil
}

func (r *Router) fail(cmdErr *models.CommandError) {
	line := fmt.Sprintf(">>> FAIL %d %s", cmdErr.StatusCode, cmdErr.StatusText)
	if cmdErr.ServerMessage != "" {
		line += ":  " + cmdErr.ServerMessage
	}
	r.trace.AppendStage(line)
	r.trace.FlushOnFailure()

	zap.S().Named("router").Debugw("command failed", "path", cmdErr.Path, "error", cmdErr)
}

func toCommandError(path string, err error) *models.CommandError {
	var te *lumina.TransportError
	if errors.As(err, &te) {
		return &models.CommandError{
			Path:          path,
			StatusCode:    te.StatusCode,
			StatusText:    te.StatusText,
			ServerMessage: te.ServerMessage(),
			Err:           te.Err,
		}
	}
	return &models.CommandError{
		Path:       path,
		StatusText: "request failed",
		Err:        err,
	}
}

// GetMainInfo returns the info of the host the console talks to.
func (r *Router) GetMainInfo(ctx context.Context) (*models.HostInfo, json.RawMessage, error) {
	return r.hostInfo(ctx, models.NewCommand("", mainInfoCommand))
}

// GetHostInfo returns the info of the host behind the named node.
func (r *Router) GetHostInfo(ctx context.Context, node string) (*models.HostInfo, json.RawMessage, error) {
	return r.hostInfo(ctx, models.NewCommand(node, hostInfoCommand))
}

// GetServerInfo returns the server's self-report, including its node list.
func (r *Router) GetServerInfo(ctx context.Context) (*models.ServerInfo, error) {
	raw, err := r.Execute(ctx, models.NewCommand("", serverInfoCommand))
	if err != nil {
		return nil, err
	}

	var info models.ServerInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("failed to decode server info: %w", err)
	}
	return &info, nil
}

func (r *Router) hostInfo(ctx context.Context, cmd models.Command) (*models.HostInfo, json.RawMessage, error) {
	raw, err := r.Execute(ctx, cmd)
	if err != nil {
		return nil, nil, err
	}

	var info models.HostInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, nil, fmt.Errorf("failed to decode host info from %q: %w", cmd.Path(), err)
	}
	return &info, raw, nil
}
