package service

import (
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/pipeline"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/state"
)

type DeviceService struct {
	fleet *state.Fleet
}

type DeviceList struct {
	Devices []domain.Device      `json:"devices"`
	Stats   pipeline.DeviceStats `json:"stats"`
}

type DeviceDetail struct {
	Device   domain.Device            `json:"device"`
	Summary  pipeline.Summary         `json:"alert_summary"`
	Severity []pipeline.SeverityPoint `json:"severity_chart"`
}

// List filters the fleet. Stats always cover every device.
func (s *DeviceService) List(q pipeline.DeviceQuery) DeviceList {
	all := s.fleet.Devices()
	return DeviceList{
		Devices: pipeline.FilterDevices(all, q),
		Stats:   pipeline.Stats(all),
	}
}

func (s *DeviceService) Get(id int) (DeviceDetail, error) {
	d, err := s.fleet.Device(id)
	if err != nil {
		return DeviceDetail{}, err
	}
	sum := pipeline.Run([]domain.Device{d}, pipeline.DefaultQuery()).Summary
	return DeviceDetail{Device: d, Summary: sum, Severity: pipeline.SeverityChart(sum)}, nil
}
