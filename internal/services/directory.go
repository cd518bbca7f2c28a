package services

import (
	"errors"
	"reflect"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lumina-home/lumina-console/internal/metrics"
	"github.com/lumina-home/lumina-console/internal/models"
)

var (
	ErrMissingHostID = errors.New("host record has no host id")
	ErrDowngrade     = errors.New("refusing to downgrade an enriched host record")
)

// Directory maps host ids to host records. Records are only ever replaced,
// never removed, and their lifecycle only moves from preliminary to enriched.
type Directory struct {
	mu    sync.RWMutex
	hosts map[string]models.HostRecord

	subsMu sync.Mutex
	subs   map[chan models.HostUpdate]struct{}
	feeds  map[*Feed]struct{}

	now func() time.Time
}

func NewDirectory() *Directory {
	return &Directory{
		hosts: make(map[string]models.HostRecord),
		subs:  make(map[chan models.HostUpdate]struct{}),
		feeds: make(map[*Feed]struct{}),
		now:   time.Now,
	}
}

// Upsert stores rec. Storing a record equal to the current one is a no-op.
func (d *Directory) Upsert(rec models.HostRecord) error {
	if rec.HostID == "" {
		return ErrMissingHostID
	}

	d.mu.Lock()
	existing, found := d.hosts[rec.HostID]
	if found {
		if rec.Lifecycle.Rank() < existing.Lifecycle.Rank() {
			d.mu.Unlock()
			metrics.RejectedDowngrades.Inc()
			zap.S().Named("directory").Warnw("rejected host record downgrade", "host_id", rec.HostID, "from", existing.Lifecycle, "to", rec.Lifecycle)
			return ErrDowngrade
		}

		rec.UpdatedAt = existing.UpdatedAt
		if reflect.DeepEqual(existing, rec) {
			d.mu.Unlock()
			return nil
		}
	}
	rec.UpdatedAt = d.now()
	d.hosts[rec.HostID] = rec
	d.updateGauges()
	d.mu.Unlock()

	update := models.HostUpdate{Record: rec}
	if found {
		update.Previous = &existing
	}
	d.publish(update)

	zap.S().Named("directory").Debugw("host record stored", "host_id", rec.HostID, "lifecycle", rec.Lifecycle, "hostname", rec.Hostname)
	return nil
}

func (d *Directory) Get(hostID string) (models.HostRecord, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	rec, ok := d.hosts[hostID]
	return rec, ok
}

func (d *Directory) Has(hostID string) bool {
	_, ok := d.Get(hostID)
	return ok
}

func (d *Directory) IsEnriched(hostID string) bool {
	rec, ok := d.Get(hostID)
	return ok && rec.IsEnriched()
}

func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.hosts)
}

// List returns all records, root first, then ordered by hostname and host id.
func (d *Directory) List() []models.HostRecord {
	d.mu.RLock()
	list := make([]models.HostRecord, 0, len(d.hosts))
	for _, rec := range d.hosts {
		list = append(list, rec)
	}
	d.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].Root != list[j].Root {
			return list[i].Root
		}
		if list[i].Hostname != list[j].Hostname {
			return list[i].Hostname < list[j].Hostname
		}
		return list[i].HostID < list[j].HostID
	})
	return list
}

// Subscribe returns a channel receiving every stored record. Updates are dropped
// for subscribers that do not keep up. The returned func unsubscribes.
func (d *Directory) Subscribe(buffer int) (<-chan models.HostUpdate, func()) {
	ch := make(chan models.HostUpdate, buffer)

	d.subsMu.Lock()
	d.subs[ch] = struct{}{}
	d.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			d.subsMu.Lock()
			delete(d.subs, ch)
			d.subsMu.Unlock()
			close(ch)
		})
	}
}

func (d *Directory) publish(update models.HostUpdate) {
	d.subsMu.Lock()
	defer d.subsMu.Unlock()

	for ch := range d.subs {
		select {
		case ch <- update:
		default:
			metrics.DroppedUpdates.Inc()
			zap.S().Named("directory").Warnw("subscriber is slow, dropping host update", "host_id", update.Record.HostID)
		}
	}
	for f := range d.feeds {
		f.push(update)
	}
}

// Follow returns a feed holding the latest pending update of every host. Unlike
// Subscribe it never drops the last state of a record. The returned func
// detaches the feed.
func (d *Directory) Follow() (*Feed, func()) {
	f := &Feed{
		pending: make(map[string]models.HostUpdate),
		ready:   make(chan struct{}, 1),
	}

	d.subsMu.Lock()
	d.feeds[f] = struct{}{}
	d.subsMu.Unlock()

	return f, func() {
		d.subsMu.Lock()
		delete(d.feeds, f)
		d.subsMu.Unlock()
	}
}

// Feed coalesces directory updates per host until they are drained.
type Feed struct {
	mu      sync.Mutex
	pending map[string]models.HostUpdate
	order   []string
	ready   chan struct{}
}

func (f *Feed) push(update models.HostUpdate) {
	f.mu.Lock()
	id := update.Record.HostID
	if queued, ok := f.pending[id]; ok {
		update.Previous = queued.Previous
	} else {
		f.order = append(f.order, id)
	}
	f.pending[id] = update
	f.mu.Unlock()

	select {
	case f.ready <- struct{}{}:
	default:
	}
}

// Ready receives a value when updates are pending.
func (f *Feed) Ready() <-chan struct{} {
	return f.ready
}

// Drain returns the pending updates in the order their hosts first changed.
func (f *Feed) Drain() []models.HostUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()

	updates := make([]models.HostUpdate, 0, len(f.order))
	for _, id := range f.order {
		updates = append(updates, f.pending[id])
	}
	f.pending = make(map[string]models.HostUpdate)
	f.order = nil
	return updates
}

// must be called with d.mu held
func (d *Directory) updateGauges() {
	counts := map[models.Lifecycle]int{
		models.LifecyclePreliminary: 0,
		models.LifecycleEnriched:    0,
	}
	for _, rec := range d.hosts {
		counts[rec.Lifecycle]++
	}
	for lc, n := range counts {
		metrics.DirectoryHosts.WithLabelValues(string(lc)).Set(float64(n))
	}
}
