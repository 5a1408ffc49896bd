package system

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
)

func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось получить лимит файлов: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось установить лимит файлов: %v", err)
	}
}

// CheckFFmpeg проверяет наличие ffmpeg/ffprobe в PATH до начала работы,
// чтобы не падать посреди выборки кадров.
func CheckFFmpeg() error {
	for _, tool := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(tool); err != nil {
			return fmt.Errorf("%s не найден в PATH: %w", tool, err)
		}
	}
	return nil
}

// MemoryReport возвращает строку с текущим потреблением памяти системы.
func MemoryReport() string {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return "memory: n/a"
	}
	return fmt.Sprintf("Memory: %.1f%% used (%.0f/%.0f MB)",
		vm.UsedPercent,
		float64(vm.Used)/1024/1024,
		float64(vm.Total)/1024/1024,
	)
}

// AppendBenchmark дописывает строку замера в benchmark.log рядом с
// рабочей директорией запуска.
func AppendBenchmark(entry string) error {
	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "[%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), entry)
	return err
}
