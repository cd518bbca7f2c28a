package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lumina-home/lumina-console/internal/metrics"
	"github.com/lumina-home/lumina-console/internal/models"
	"github.com/lumina-home/lumina-console/pkg/scheduler"
)

var (
	ErrRootUnreachable  = errors.New("root host unreachable")
	ErrDiscoveryRunning = errors.New("discovery loop already running")
)

// NodeErrorHook receives per-node fetch failures. It must not block.
type NodeErrorHook func(node models.NodeDescriptor, err error)

type DiscovererOption func(d *Discoverer)

func WithNodeErrorHook(fn NodeErrorHook) DiscovererOption {
	return func(d *Discoverer) {
		d.onNodeError = fn
	}
}

// Discoverer fills the directory from the root host's info and the server's
// node list. Per-node fetches run on the scheduler and never fail the pass.
type Discoverer struct {
	router    *Router
	directory *Directory
	scheduler *scheduler.Scheduler

	mu          sync.Mutex
	inflight    map[string]uint64
	claims      uint64
	status      models.DiscoveryStatus
	running     bool
	onNodeError NodeErrorHook
}

func NewDiscoverer(r *Router, dir *Directory, s *scheduler.Scheduler, opts ...DiscovererOption) *Discoverer {
	d := &Discoverer{
		router:    r,
		directory: dir,
		scheduler: s,
		inflight:  make(map[string]uint64),
		status:    models.DiscoveryStatus{State: models.DiscoveryStateIdle},
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

func (d *Discoverer) Directory() *Directory {
	return d.directory
}

func (d *Discoverer) Status() models.DiscoveryStatus {
	d.mu.Lock()
	defer d.mu.Unlock()
	status := d.status
	status.InFlight = len(d.inflight)
	return status
}

func (d *Discoverer) setState(state models.DiscoveryState) {
	d.mu.Lock()
	defer d.mu.Unlock()

	zap.S().Named("discovery").Debugw("discovery state transition", "from", d.status.State, "to", state)
	d.status.State = state
	if state != models.DiscoveryStateError {
		d.status.Error = ""
	}
}

func (d *Discoverer) setError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.status.State = models.DiscoveryStateError
	d.status.Error = err.Error()
}

// Discover runs one pass. It returns once the root host and the server's node
// list are known and all node fetches have been dispatched; it does not wait
// for them. A root or server failure is returned wrapped in ErrRootUnreachable.
func (d *Discoverer) Discover(ctx context.Context) (*Pass, error) {
	d.mu.Lock()
	d.status = models.DiscoveryStatus{State: models.DiscoveryStateStarted, StartedAt: time.Now()}
	d.mu.Unlock()

	info, raw, err := d.router.GetMainInfo(ctx)
	if err != nil {
		return nil, d.abort("main info", err)
	}
	if info.HostID == "" {
		return nil, d.abort("main info", fmt.Errorf("%w: main info has no host id", models.ErrProtocolViolation))
	}

	root := hostRecordFromInfo(*info, raw, "", true)
	if err := d.directory.Upsert(root); err != nil {
		return nil, d.abort("root record", err)
	}
	d.setState(models.DiscoveryStateRootKnown)

	server, err := d.router.GetServerInfo(ctx)
	if err != nil {
		return nil, d.abort("server info", err)
	}

	pass := &Pass{}
	for _, node := range server.Nodes {
		if !node.Discoverable() {
			continue
		}
		if f := d.dispatch(node); f != nil {
			pass.futures = append(pass.futures, f)
		}
	}

	d.mu.Lock()
	d.status.State = models.DiscoveryStateEnumerated
	d.status.Dispatched = len(pass.futures)
	d.mu.Unlock()

	metrics.DiscoveryPasses.WithLabelValues("success").Inc()
	zap.S().Named("discovery").Infow("discovery pass dispatched", "root", root.HostID, "nodes", len(server.Nodes), "fetches", len(pass.futures))

	return pass, nil
}

func (d *Discoverer) abort(stage string, err error) error {
	err = fmt.Errorf("%w: %s: %w", ErrRootUnreachable, stage, err)
	d.setError(err)
	metrics.DiscoveryPasses.WithLabelValues("failure").Inc()
	zap.S().Named("discovery").Errorw("discovery pass failed", "stage", stage, "error", err)
	return err
}

// claim marks hostID as being fetched and returns the claim token. Hosts
// already enriched or with a fetch in flight are skipped.
func (d *Discoverer) claim(hostID string) (uint64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, busy := d.inflight[hostID]; busy {
		return 0, false
	}
	if d.directory.IsEnriched(hostID) {
		return 0, false
	}
	d.claims++
	d.inflight[hostID] = d.claims
	return d.claims, true
}

// release drops the in-flight marker of hostID if it still belongs to token.
func (d *Discoverer) release(hostID string, token uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.inflight[hostID] == token {
		delete(d.inflight, hostID)
	}
}

func (d *Discoverer) dispatch(node models.NodeDescriptor) *models.Future[models.Result[any]] {
	hostID := *node.HostID
	token, ok := d.claim(hostID)
	if !ok {
		return nil
	}

	stub := models.HostRecord{
		HostID:    hostID,
		Hostname:  node.Hostname,
		NodeName:  node.Name,
		Lifecycle: models.LifecyclePreliminary,
		Status:    models.ParseStatusCode(string(node.Status)),
		StatusWhy: node.StatusWhy,
	}
	if err := d.directory.Upsert(stub); err != nil {
		// enriched by a concurrent pass in the meantime
		d.release(hostID, token)
		return nil
	}

	f := d.scheduler.AddWork(func(ctx context.Context) (any, error) {
		defer d.release(hostID, token)
		return d.enrich(ctx, node)
	})
	// work cancelled before a worker picks it up never runs
	go func() {
		<-f.Done()
		d.release(hostID, token)
	}()
	return f
}

func (d *Discoverer) enrich(ctx context.Context, node models.NodeDescriptor) (any, error) {
	info, raw, err := d.router.GetHostInfo(ctx, node.Name)
	if err != nil {
		d.nodeFailed(node, err)
		return nil, err
	}
	if info.HostID == "" && info.Hostname == "" {
		err := fmt.Errorf("%w: host info of node %s has neither host id nor hostname", models.ErrProtocolViolation, node.Name)
		d.nodeFailed(node, err)
		return nil, err
	}

	// The record stays keyed by the listed id so that it replaces the stub.
	listed := *node.HostID
	if info.HostID != "" && info.HostID != listed {
		zap.S().Named("discovery").Warnw("node reported a different host id", "node", node.Name, "listed", listed, "reported", info.HostID)
	}
	info.HostID = listed
	if info.Hostname == "" {
		info.Hostname = node.Hostname
	}

	rec := hostRecordFromInfo(*info, raw, node.Name, false)
	if err := d.directory.Upsert(rec); err != nil {
		d.nodeFailed(node, err)
		return nil, err
	}

	metrics.NodeFetches.WithLabelValues("success").Inc()
	return rec, nil
}

func (d *Discoverer) nodeFailed(node models.NodeDescriptor, err error) {
	metrics.NodeFetches.WithLabelValues("failure").Inc()
	zap.S().Named("discovery").Warnw("failed to fetch host info", "node", node.Name, "host_id", *node.HostID, "error", err)
	if d.onNodeError != nil {
		d.onNodeError(node, err)
	}
}

// Run discovers immediately and then on every tick until ctx is done. Failed
// passes are logged and retried on the next tick.
func (d *Discoverer) Run(ctx context.Context, interval time.Duration) error {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return ErrDiscoveryRunning
	}
	d.running = true
	d.mu.Unlock()

	tick := time.NewTicker(interval)
	defer func() {
		tick.Stop()
		d.mu.Lock()
		d.running = false
		d.mu.Unlock()
		zap.S().Named("discovery").Debugw("discovery loop stopped")
	}()

	for {
		if _, err := d.Discover(ctx); err != nil {
			zap.S().Named("discovery").Debugw("discovery pass will be retried", "interval", interval)
		}

		select {
		case <-tick.C:
		case <-ctx.Done():
			return nil
		}
	}
}

// Pass is the handle of one discovery pass. Observers of the directory do not
// need it; Wait is for callers that want to join the node fetches.
type Pass struct {
	futures []*models.Future[models.Result[any]]
}

// Dispatched returns the number of node fetches issued by the pass.
func (p *Pass) Dispatched() int {
	return len(p.futures)
}

// Wait blocks until every node fetch has settled and returns how many failed.
// Failures are already absorbed; they are only counted here.
func (p *Pass) Wait(ctx context.Context) (int, error) {
	failed := 0
	for _, f := range p.futures {
		result, err := f.Wait(ctx)
		if err != nil {
			return failed, err
		}
		if result.Err != nil {
			failed++
		}
	}
	return failed, nil
}

func hostRecordFromInfo(info models.HostInfo, raw json.RawMessage, nodeName string, root bool) models.HostRecord {
	plugins := make([]models.PluginInfo, 0, len(info.Plugins))
	for _, p := range info.Plugins {
		p.Status = models.ParseStatusCode(string(p.Status))
		plugins = append(plugins, p)
	}

	return models.HostRecord{
		HostID:    info.HostID,
		Hostname:  info.Hostname,
		NodeName:  nodeName,
		Lifecycle: models.LifecycleEnriched,
		Root:      root,
		Status:    models.ParseStatusCode(string(info.Status)),
		StatusWhy: info.StatusWhy,
		StartTime: info.StartTime,
		Plugins:   plugins,
		Config:    info.Config,
		Raw:       raw,
	}
}
