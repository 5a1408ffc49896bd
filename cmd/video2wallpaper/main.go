package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/video2wallpaper/internal/config"
	"github.com/ivlev/video2wallpaper/internal/descriptor"
	"github.com/ivlev/video2wallpaper/internal/engine"
	"github.com/ivlev/video2wallpaper/internal/profile"
	"github.com/ivlev/video2wallpaper/internal/solar"
	"github.com/ivlev/video2wallpaper/internal/source"
	"github.com/ivlev/video2wallpaper/internal/system"
	"github.com/ivlev/video2wallpaper/internal/timecode"
)

const buildVersion = "1.0.0"

func main() {
	system.InitResourceLimits()

	var (
		workingDir  string
		skipFrames  int
		numFrames   int
		location    string
		dawnFrame   int
		sunriseFr   int
		sunsetFr    int
		duskFrame   int
		csvOut      bool
		mirror      bool
		noWrite     bool
		dateStr     string
		transition  float64
		options     string
		maxWidth    int
		maxHeight   int
		quality     int
		workers     int
		dpi         float64
		profilePath string
		saveProfile string
		suggest     bool
		stats       bool
	)

	flag.StringVar(&workingDir, "working_dir", ".", "Директория для кадров и дескрипторов")
	flag.StringVar(&workingDir, "w", ".", "Короткая форма -working_dir")
	flag.IntVar(&skipFrames, "skip-frames", 0, "Сколько кадров пропустить после перехода к началу")
	flag.IntVar(&skipFrames, "s", 0, "Короткая форма -skip-frames")
	flag.IntVar(&numFrames, "num-frames", 0, "Число кадров (0 — по интервалу времени)")
	flag.IntVar(&numFrames, "n", 0, "Короткая форма -num-frames")
	flag.StringVar(&location, "location", "Atlanta", "Город для расчёта солнечных событий")
	flag.IntVar(&dawnFrame, "dawn-frame", 0, "Кадр рассвета (dawn)")
	flag.IntVar(&sunriseFr, "sunrise-frame", 0, "Кадр восхода (sunrise)")
	flag.IntVar(&sunsetFr, "sunset-frame", 0, "Кадр заката (sunset); при -mirror выводится зеркально")
	flag.IntVar(&duskFrame, "dusk-frame", 0, "Кадр сумерек (dusk); при -mirror выводится зеркально")
	flag.BoolVar(&csvOut, "csv", false, "Дополнительно записать CSV со временем каждого кадра")
	flag.BoolVar(&mirror, "mirror", false, "Построить вечер из утренних кадров в обратном порядке")
	flag.BoolVar(&noWrite, "no-write", false, "Не писать изображения, только дескрипторы")
	flag.StringVar(&dateStr, "date", "", "Дата цикла YYYY-MM-DD (по умолчанию сегодня)")
	flag.Float64Var(&transition, "transition", descriptor.DefaultTransition, "Длительность перехода между кадрами (сек)")
	flag.StringVar(&options, "options", "zoom", "Режим показа: zoom, centered, scaled, stretched, wallpaper, spanned")
	flag.IntVar(&maxWidth, "max-width", 0, "Максимальная ширина кадра (0 — без ограничения)")
	flag.IntVar(&maxHeight, "max-height", 0, "Максимальная высота кадра (0 — без ограничения)")
	flag.IntVar(&quality, "quality", 95, "Качество JPEG (1-100)")
	flag.IntVar(&workers, "workers", 4, "Потоки записи кадров")
	flag.Float64Var(&dpi, "dpi", 150, "DPI рендеринга страниц PDF")
	flag.StringVar(&profilePath, "profile", "", "YAML-профиль с настройками по умолчанию")
	flag.StringVar(&saveProfile, "save-profile", "", "Сохранить настройки запуска в YAML-профиль")
	flag.BoolVar(&suggest, "suggest-anchors", false, "Подсказать якорные кадры по профилю яркости")
	flag.BoolVar(&stats, "stats", false, "Показать отчёт о ресурсах после запуска")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Использование: %s [флаги] input [start_time end_time]\n\n"+
				"  input       видеофайл, каталог изображений или PDF\n"+
				"  start_time  начало интервала HH:MM[:SS[:ms]] (для видео)\n"+
				"  end_time    конец интервала HH:MM[:SS[:ms]] (для видео)\n\n",
			os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	input := flag.Arg(0)

	// Времена разбираются до любого I/O: ошибка формата должна
	// обрываться раньше, чем появится хоть один файл.
	var startSec, endSec float64
	var err error
	if flag.NArg() >= 3 {
		startSec, err = timecode.Parse(flag.Arg(1))
		if err != nil {
			log.Fatalf("[-] start_time: %v", err)
		}
		endSec, err = timecode.Parse(flag.Arg(2))
		if err != nil {
			log.Fatalf("[-] end_time: %v", err)
		}
	}

	date := time.Now()
	if dateStr != "" {
		date, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			log.Fatalf("[-] Дата %q: нужен формат YYYY-MM-DD", dateStr)
		}
	}

	cfg := &config.Config{
		Input:          input,
		WorkingDir:     workingDir,
		Name:           baseName(input),
		StartSeconds:   startSec,
		EndSeconds:     endSec,
		NumFrames:      numFrames,
		SkipFrames:     skipFrames,
		Mirror:         mirror,
		Location:       location,
		Date:           date,
		DawnFrame:      dawnFrame,
		SunriseFrame:   sunriseFr,
		SunsetFrame:    sunsetFr,
		DuskFrame:      duskFrame,
		Transition:     transition,
		Options:        options,
		CSV:            csvOut,
		NoWrite:        noWrite,
		MaxWidth:       maxWidth,
		MaxHeight:      maxHeight,
		Quality:        quality,
		Workers:        workers,
		DPI:            dpi,
		SuggestAnchors: suggest,
		ShowStats:      stats,
		BuildVersion:   buildVersion,
	}

	if profilePath != "" {
		// короткие формы учитываются под длинными именами
		long := map[string]string{"w": "working_dir", "s": "skip-frames", "n": "num-frames"}
		set := map[string]bool{}
		flag.Visit(func(f *flag.Flag) {
			name := f.Name
			if l, ok := long[name]; ok {
				name = l
			}
			set[name] = true
		})

		prof, err := profile.Read(profilePath)
		if err != nil {
			log.Fatalf("[-] Профиль %s: %v", profilePath, err)
		}
		if err := prof.Apply(cfg, set); err != nil {
			log.Fatalf("[-] Профиль %s: %v", profilePath, err)
		}
		fmt.Printf("[*] Используется профиль: %s\n", profilePath)
	}

	if !descriptor.ValidOption(cfg.Options) {
		log.Fatalf("[-] Неизвестный режим показа %q, допустимо: %s",
			cfg.Options, strings.Join(descriptor.DisplayOptions, ", "))
	}

	if isVideoInput(cfg.Input) {
		if err := system.CheckFFmpeg(); err != nil {
			log.Fatalf("[-] %v", err)
		}
		if flag.NArg() < 3 {
			log.Fatalf("[-] Для видео обязательны start_time и end_time")
		}
	}

	src, err := source.Open(cfg.Input, cfg.DPI)
	if err != nil {
		log.Fatalf("[-] Источник %s: %v", cfg.Input, err)
	}
	defer src.Close()

	if saveProfile != "" {
		if err := profile.Write(profile.FromConfig(cfg), saveProfile); err != nil {
			log.Fatalf("[-] Сохранение профиля %s: %v", saveProfile, err)
		}
		fmt.Printf("[*] Профиль сохранён: %s\n", saveProfile)
	}

	project := engine.NewProject(cfg, src, solar.AstralResolver{})
	if err := project.Run(); err != nil {
		log.Fatalf("[-] Ошибка проекта: %v", err)
	}

	fmt.Printf("[+++] Успех! Обои: %s\n", filepath.Join(cfg.WorkingDir, cfg.Name+".xml"))
}

func isVideoInput(input string) bool {
	if strings.HasSuffix(strings.ToLower(input), ".pdf") {
		return false
	}
	fi, err := os.Stat(input)
	return err == nil && !fi.IsDir()
}

func baseName(input string) string {
	base := filepath.Base(strings.TrimSuffix(input, string(filepath.Separator)))
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ReplaceAll(name, " ", "_")
}
