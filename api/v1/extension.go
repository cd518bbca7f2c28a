package v1

import (
	"github.com/lumina-home/lumina-console/internal/models"
	"github.com/lumina-home/lumina-console/internal/services"
)

func (d *DisplayStatus) FromModel(m models.DisplayStatus) {
	d.Color = string(m.Color)
	d.Icon = string(m.Icon)
	d.Reason = m.ReasonText
}

func (p *Plugin) FromModel(m models.PluginInfo) {
	p.Name = m.Name
	p.Module = m.Module
	p.Sequence = m.Sequence
	p.Depends = m.Depends
	p.Doc = m.Doc
	p.Status = string(m.Status)
	p.StatusWhy = m.Reason
	p.DisplayStatus.FromModel(services.ResolveStatus(m.Status, m.Reason))
}

func (h *Host) FromModel(m models.HostRecord) {
	h.HostId = m.HostID
	h.Hostname = m.Hostname
	h.NodeName = m.NodeName
	h.Lifecycle = HostLifecycle(m.Lifecycle)
	h.Root = m.Root
	h.Status = string(m.Status)
	h.StatusWhy = m.StatusWhy
	h.DisplayStatus.FromModel(services.ResolveStatus(m.Status, m.StatusWhy))
	h.StartTime = m.StartTime
	h.UpdatedAt = m.UpdatedAt

	h.Plugins = make([]Plugin, 0, len(m.Plugins))
	for _, mp := range m.Plugins {
		var p Plugin
		p.FromModel(mp)
		h.Plugins = append(h.Plugins, p)
	}

	h.Config = make([]ConfigEntry, 0, len(m.Config))
	for _, c := range m.Config {
		h.Config = append(h.Config, ConfigEntry(c))
	}
}

func (l *HostList) FromModel(m []models.HostRecord) {
	l.Hosts = make([]Host, 0, len(m))
	for _, rec := range m {
		var h Host
		h.FromModel(rec)
		l.Hosts = append(l.Hosts, h)
	}
	l.Total = len(l.Hosts)
}

func (u *HostUpdate) FromModel(m models.HostUpdate) {
	u.Host.FromModel(m.Record)
	if m.Previous != nil {
		lc := HostLifecycle(m.Previous.Lifecycle)
		u.PreviousLifecycle = &lc
	}
}

func (s *DiscoveryStatus) FromModel(m models.DiscoveryStatus) {
	s.State = string(m.State)
	s.Error = m.Error
	s.Dispatched = m.Dispatched
	s.InFlight = m.InFlight
	if !m.StartedAt.IsZero() {
		t := m.StartedAt
		s.StartedAt = &t
	}
}

func (f *CommandFailure) FromModel(m *models.CommandError) {
	f.Error = m.Error()
	f.StatusCode = m.StatusCode
	f.StatusText = m.StatusText
	f.ServerMessage = m.ServerMessage
}
