// stw2xml перегоняет старый текстовый формат слайдшоу (.stw) в пару
// timed/wrapper XML-дескрипторов, минуя повторную выборку кадров.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ivlev/video2wallpaper/internal/descriptor"
)

func main() {
	var (
		workingDir string
		dateStr    string
		transition float64
		options    string
	)

	flag.StringVar(&workingDir, "working_dir", ".", "Директория с кадрами и для дескрипторов")
	flag.StringVar(&workingDir, "w", ".", "Короткая форма -working_dir")
	flag.StringVar(&dateStr, "date", "", "Дата цикла YYYY-MM-DD (по умолчанию сегодня)")
	flag.Float64Var(&transition, "transition", descriptor.DefaultTransition, "Длительность перехода между кадрами (сек)")
	flag.StringVar(&options, "options", "zoom", "Режим показа обоев")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Использование: %s [флаги] file.stw\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	date := time.Now()
	if dateStr != "" {
		var err error
		date, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			log.Fatalf("[-] Дата %q: нужен формат YYYY-MM-DD", dateStr)
		}
	}
	if !descriptor.ValidOption(options) {
		log.Fatalf("[-] Неизвестный режим показа %q", options)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("[-] %v", err)
	}
	defer f.Close()

	st, err := descriptor.ReadSTW(f)
	if err != nil {
		log.Fatalf("[-] Разбор %s: %v", flag.Arg(0), err)
	}
	if len(st.Entries) == 0 {
		log.Fatalf("[-] В %s нет ни одной записи кадра", flag.Arg(0))
	}
	fmt.Printf("[*] %s: %d кадров, формат %s\n", st.Name, len(st.Entries), st.Format)

	// сутки цикла отсчитываются от первого кадра списка, не от полуночи
	frames := st.Frames(workingDir, date, time.Local)

	timedPath, err := descriptor.WriteTimed(workingDir, st.Name, frames, transition)
	if err != nil {
		log.Fatalf("[-] Запись timed-дескриптора: %v", err)
	}
	wrapperPath, err := descriptor.WriteWrapper(workingDir, st.Name, timedPath, options)
	if err != nil {
		log.Fatalf("[-] Запись wrapper-дескриптора: %v", err)
	}

	fmt.Printf("[+++] Успех! %s, %s\n", timedPath, wrapperPath)
}
