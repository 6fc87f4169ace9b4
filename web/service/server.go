package service

import (
	"time"

	"github.com/schemahub/schemahub/config"
	"github.com/schemahub/schemahub/logger"
	"github.com/schemahub/schemahub/web/entity"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// ServerService reports a host status snapshot for operators.
type ServerService struct {
	startTime time.Time
}

func NewServerService() *ServerService {
	return &ServerService{startTime: time.Now()}
}

// GetStatus collects cpu, memory and load figures. Individual probe failures
// are logged and leave their field zeroed rather than failing the request.
func (s *ServerService) GetStatus() *entity.ServerStatus {
	status := &entity.ServerStatus{
		Uptime:  uint64(time.Since(s.startTime).Seconds()),
		Version: config.GetVersion(),
	}

	percents, err := cpu.Percent(0, false)
	if err != nil {
		logger.Warning("get cpu percent failed:", err)
	} else if len(percents) > 0 {
		status.Cpu = percents[0]
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		status.Mem.Current = memInfo.Used
		status.Mem.Total = memInfo.Total
	}

	avgState, err := load.Avg()
	if err != nil {
		logger.Warning("get load avg failed:", err)
	} else {
		status.Loads = []float64{avgState.Load1, avgState.Load5, avgState.Load15}
	}

	return status
}
