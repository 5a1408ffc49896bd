package engine

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/video2wallpaper/internal/analyzer"
	"github.com/ivlev/video2wallpaper/internal/capture"
	"github.com/ivlev/video2wallpaper/internal/config"
	"github.com/ivlev/video2wallpaper/internal/descriptor"
	"github.com/ivlev/video2wallpaper/internal/schedule"
	"github.com/ivlev/video2wallpaper/internal/solar"
	"github.com/ivlev/video2wallpaper/internal/source"
	"github.com/ivlev/video2wallpaper/internal/system"
)

type Project struct {
	Config   *config.Config
	Source   source.Source
	Resolver solar.Resolver
}

func NewProject(cfg *config.Config, src source.Source, res solar.Resolver) *Project {
	return &Project{Config: cfg, Source: src, Resolver: res}
}

// Run выполняет полный цикл: выборка кадров из источника, привязка ко
// времени суток по солнечным событиям, запись timed/wrapper дескрипторов.
func (p *Project) Run() error {
	startedAt := time.Now()
	cfg := p.Config

	workDir, err := filepath.Abs(cfg.WorkingDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return err
	}

	plan, err := p.plan()
	if err != nil {
		return err
	}

	fmt.Println("--- [PROJECT: TIMED WALLPAPER] ---")
	fmt.Printf("[*] Источник: %s | Кадры: %d..%d (%d шт)\n",
		cfg.Input, plan.StartFrame, plan.EndFrame, plan.Count())
	if plan.Mirror {
		fmt.Println("[*] Зеркалирование: вечерняя половина из утренних кадров")
	}
	fmt.Println("----------------------------------")

	// Солнечные события запрашиваются до выборки: неизвестная локация
	// должна падать раньше, чем начнётся чтение кадров.
	instants, loc, err := p.Resolver.Resolve(cfg.Location, cfg.Date)
	if err != nil {
		return fmt.Errorf("солнечные события для %q: %w", cfg.Location, err)
	}
	dayStart, dayEnd := schedule.Day(cfg.Date, loc)

	pics, read, err := p.sample(plan, workDir)
	if err != nil {
		return err
	}
	if read < plan.Count() {
		fmt.Printf("[!] Источник исчерпан: прочитано %d из %d кадров\n", read, plan.Count())
	}
	if len(pics) == 0 {
		return fmt.Errorf("из источника не прочитано ни одного кадра")
	}

	timed, err := p.assign(plan, pics, instants, dayStart, dayEnd)
	if err != nil {
		return err
	}

	timedPath, err := descriptor.WriteTimed(workDir, cfg.Name, timed, cfg.Transition)
	if err != nil {
		return fmt.Errorf("запись timed-дескриптора: %w", err)
	}
	wrapperPath, err := descriptor.WriteWrapper(workDir, cfg.Name, timedPath, cfg.Options)
	if err != nil {
		return fmt.Errorf("запись wrapper-дескриптора: %w", err)
	}
	fmt.Printf("[>] Дескрипторы: %s, %s\n", timedPath, wrapperPath)

	if cfg.CSV {
		csvPath, err := descriptor.WriteCSV(workDir, cfg.Name, timed)
		if err != nil {
			return fmt.Errorf("запись CSV: %w", err)
		}
		fmt.Printf("[>] CSV: %s\n", csvPath)
	}

	if cfg.ShowStats {
		p.report(startedAt, read, len(pics))
	}
	return nil
}

// plan рассчитывает окно выборки. Для каталогов и PDF временное окно не
// задано, и число кадров берётся из самого источника.
func (p *Project) plan() (capture.Plan, error) {
	cfg := p.Config

	num := cfg.NumFrames
	if num <= 0 && cfg.EndSeconds <= cfg.StartSeconds {
		num = p.Source.FrameCount()
	}

	plan := capture.NewPlan(cfg.StartSeconds, cfg.EndSeconds, p.Source.FPS(),
		num, cfg.SkipFrames, cfg.Mirror)
	if plan.NumFrames <= 0 {
		return capture.Plan{}, fmt.Errorf("пустое окно выборки: задайте интервал времени или -num-frames")
	}
	return plan, nil
}

// sample читает окно кадр за кадром. Чтение строго последовательное,
// кодирование и запись JPEG уходят в пул воркеров; порядок вывода
// зафиксирован планом заранее, поэтому параллельная запись его не меняет.
func (p *Project) sample(plan capture.Plan, workDir string) ([]capture.Frame, int, error) {
	cfg := p.Config

	name := func(index int) string {
		return filepath.Join(workDir, fmt.Sprintf("%s-%03d.jpg", cfg.Name, index))
	}

	// Без записи и анализа яркости кадры не нужны вовсе:
	// последовательность и пути полностью определяются планом.
	if cfg.NoWrite && !cfg.SuggestAnchors {
		return plan.Sequence(name), plan.Count(), nil
	}

	if err := p.Source.Seek(plan.StartFrame); err != nil {
		return nil, 0, fmt.Errorf("переход к кадру %d: %w", plan.StartFrame, err)
	}

	bar := progressbar.NewOptions(plan.Count(),
		progressbar.OptionSetDescription("[*] Выборка кадров"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(50),
	)
	defer bar.Finish()

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	g := new(errgroup.Group)
	g.SetLimit(workers)

	var luminance []float64

	pics, read, err := capture.Sample(plan, p.Source, name, func(img image.Image, paths []string) error {
		bar.Add(1)

		if cfg.SuggestAnchors {
			luminance = append(luminance, analyzer.MeanLuminance(img))
		}

		if cfg.NoWrite {
			p.release(img)
			return nil
		}

		out := scaleDown(img, cfg.MaxWidth, cfg.MaxHeight)
		targets := append([]string(nil), paths...)
		g.Go(func() error {
			defer p.release(img)

			var buf bytes.Buffer
			if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: cfg.Quality}); err != nil {
				return fmt.Errorf("кодирование %s: %w", targets[0], err)
			}
			// зеркальный кадр пишется теми же байтами
			for _, t := range targets {
				if err := os.WriteFile(t, buf.Bytes(), 0644); err != nil {
					return fmt.Errorf("запись %s: %w", t, err)
				}
			}
			return nil
		})
		return nil
	})
	if err != nil {
		g.Wait()
		return nil, read, err
	}
	if err := g.Wait(); err != nil {
		return nil, read, err
	}
	fmt.Println()

	if cfg.SuggestAnchors {
		if s, ok := analyzer.SuggestAnchors(luminance); ok {
			fmt.Printf("[*] Подсказка по яркости: -dawn-frame %d -sunrise-frame %d\n",
				s.DawnFrame, s.SunriseFrame)
		} else {
			fmt.Println("[!] Профиль яркости слишком ровный, подсказки по якорям нет")
		}
	}
	return pics, read, nil
}

// assign раздаёт кадрам время суток: равномерно по всему дню, когда
// якоря не заданы, иначе по шести сегментам между солнечными событиями.
func (p *Project) assign(plan capture.Plan, pics []capture.Frame, inst solar.Instants, dayStart, dayEnd time.Time) ([]schedule.TimedFrame, error) {
	cfg := p.Config

	if cfg.DawnFrame == 0 && cfg.SunriseFrame == 0 {
		fmt.Println("[*] Якоря не заданы: кадры распределяются равномерно по суткам")
		return schedule.AssignUniform(pics, dayStart)
	}

	anchors := deriveAnchors(plan, cfg, len(pics))
	if err := checkAnchors(anchors, len(pics)); err != nil {
		return nil, err
	}
	instants := schedule.Instants{
		Start:   dayStart,
		Dawn:    inst.Dawn,
		Sunrise: inst.Sunrise,
		Noon:    inst.Noon,
		Sunset:  inst.Sunset,
		Dusk:    inst.Dusk,
		End:     dayEnd,
	}

	fmt.Printf("[*] Солнечные события (%s, %s):\n", cfg.Location, dayStart.Location())
	for _, row := range []struct {
		name  string
		t     time.Time
		frame int
	}{
		{"dawn", inst.Dawn, anchors.Dawn},
		{"sunrise", inst.Sunrise, anchors.Sunrise},
		{"noon", inst.Noon, anchors.Noon},
		{"sunset", inst.Sunset, anchors.Sunset},
		{"dusk", inst.Dusk, anchors.Dusk},
	} {
		fmt.Printf("    %-8s %s  кадр %d\n", row.name, row.t.Format("15:04:05"), row.frame)
	}

	return schedule.Assign(pics, anchors, instants)
}

// deriveAnchors переводит пользовательские якоря в разрезы
// последовательности. Полдень всегда середина списка; при зеркалировании
// закат и сумерки не берутся у пользователя, а отражаются от рассвета.
func deriveAnchors(plan capture.Plan, cfg *config.Config, total int) schedule.Anchors {
	a := schedule.Anchors{
		Dawn:    cfg.DawnFrame,
		Sunrise: cfg.SunriseFrame,
		Noon:    total / 2,
		Sunset:  cfg.SunsetFrame,
		Dusk:    cfg.DuskFrame,
	}
	if plan.Mirror {
		a.Sunset = plan.MirroredIndex(plan.StartFrame + cfg.SunriseFrame)
		a.Dusk = plan.MirroredIndex(plan.StartFrame + cfg.DawnFrame)
	}
	return a
}

// checkAnchors отклоняет якоря за пределами [0, n] до разрезания
// последовательности.
func checkAnchors(a schedule.Anchors, n int) error {
	for _, c := range []struct {
		name  string
		frame int
	}{
		{"dawn", a.Dawn},
		{"sunrise", a.Sunrise},
		{"noon", a.Noon},
		{"sunset", a.Sunset},
		{"dusk", a.Dusk},
	} {
		if c.frame < 0 || c.frame > n {
			return fmt.Errorf("якорный кадр %s=%d вне последовательности из %d кадров", c.name, c.frame, n)
		}
	}
	return nil
}

// release возвращает буфер кадра в пул после использования.
func (p *Project) release(img image.Image) {
	if rgba, ok := img.(*image.RGBA); ok {
		system.PutFrame(rgba)
	}
}

// scaleDown уменьшает кадр до ограничений max-width/max-height с
// сохранением пропорций. Кадры меньше лимитов не трогаются.
func scaleDown(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	scale := 1.0
	if maxW > 0 && w > maxW {
		scale = float64(maxW) / float64(w)
	}
	if maxH > 0 && h > maxH {
		if s := float64(maxH) / float64(h); s < scale {
			scale = s
		}
	}
	if scale >= 1 {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func (p *Project) report(startedAt time.Time, read, total int) {
	elapsed := time.Since(startedAt)
	fps := float64(read) / elapsed.Seconds()

	fmt.Printf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Frames Read: %d\n"+
			"Frames Emitted: %d\n"+
			"Effective FPS: %.2f\n"+
			"%s\n"+
			"----------------------------\n",
		p.Config.BuildVersion, elapsed.Seconds(), read, total, fps, system.MemoryReport(),
	)

	entry := fmt.Sprintf("Build: %s | Input: %s | Frames: %d | Total: %.2fs | FPS: %.2f",
		p.Config.BuildVersion, filepath.Base(p.Config.Input), read, elapsed.Seconds(), fps)
	if err := system.AppendBenchmark(entry); err != nil {
		fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
	}
}
