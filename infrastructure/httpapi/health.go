package httpapi

import (
	"net/http"
	"os"

	"github.com/shirou/gopsutil/process"
)

type healthReport struct {
	Pid        int     `json:"pid"`
	PidStatus  string  `json:"pidStatus"`
	CpuPercent float64 `json:"cpuPercent"`
	RamBytes   uint64  `json:"ramBytes"`
}

// health reports process liveness plus RAM, CPU and OS status of the server
// process itself.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	rss, cpu, status, err := selfStats(p)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.respondJSON(w, healthReport{
		Pid:        os.Getpid(),
		PidStatus:  status,
		CpuPercent: cpu,
		RamBytes:   rss,
	})
}

// selfStats retrieves technical metrics (memory, CPU, and OS status) for the
// given process.
func selfStats(p *process.Process) (uint64, float64, string, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, "", err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, "", err
	}
	status, err := p.Status()
	if err != nil {
		return 0, 0, "", err
	}
	return memInfo.RSS, cpuPercent, status, nil
}
