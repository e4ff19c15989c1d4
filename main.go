// wavedisplay auditions an audio file from the command line: it decodes
// the file into memory, streams it to the default output device and
// accepts transport commands (play/pause/seek/stop) on stdin while
// printing the playback position.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/solaaa/wavedisplay/internal/audiofile"
	"github.com/solaaa/wavedisplay/internal/config"
	"github.com/solaaa/wavedisplay/internal/device"
	"github.com/solaaa/wavedisplay/internal/errmsg"
	"github.com/solaaa/wavedisplay/internal/player"
)

var errQuit = errors.New("quit")

func main() {
	seek := flag.Float64("seek", 0, "start position in seconds")
	quiet := flag.Bool("quiet", false, "suppress periodic position output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <audio file>\n\n", filepath.Base(os.Args[0]))
		fmt.Fprintln(os.Stderr, "Commands on stdin: play, pause, seek <seconds>, stop, status, quit")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *seek, *quiet); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string, seek float64, quiet bool) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}
	path = resolvePath(cfg, path)

	buf, err := audiofile.ReadFile(path)
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpFileOpen, path, err))
	}
	info := audiofile.ReadInfo(path)

	eng := player.New(device.NewMalgo(), player.Settings{
		BlockSize:        cfg.Playback.BlockSize,
		PositionInterval: cfg.Playback.PositionInterval(),
		StopTimeout:      cfg.Playback.StopTimeout(),
	})
	defer eng.Close()

	if err := eng.Load(buf); err != nil {
		return errors.New(errmsg.Format(errmsg.OpFileRead, err))
	}
	sub := eng.Subscribe()

	printHeader(info, buf)
	if seek > 0 {
		if err := eng.Seek(seek); err != nil {
			return errors.New(errmsg.Format(errmsg.OpPlaybackSeek, err))
		}
	}
	if err := eng.Play(); err != nil {
		return errors.New(errmsg.Format(errmsg.OpPlaybackStart, err))
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	for {
		select {
		case sig := <-sub.Signals:
			fmt.Printf("\n%s\n", sig)
			if sig == player.SignalFinished {
				return nil
			}
		case pos := <-sub.Positions:
			if !quiet {
				fmt.Printf("\r%6.2fs / %.2fs ", pos, eng.Duration())
			}
		case e := <-sub.Errors:
			fmt.Fprintf(os.Stderr, "\n%s\n", errmsg.Format(errmsg.Op(e.Op), e.Err))
		case line, ok := <-lines:
			if !ok {
				return eng.Stop()
			}
			if err := handleCommand(eng, line); err != nil {
				if errors.Is(err, errQuit) {
					return eng.Stop()
				}
				fmt.Fprintln(os.Stderr, err)
			}
		}
	}
}

func handleCommand(eng *player.Player, line string) error {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "play", "p":
		return eng.Play()
	case "pause":
		eng.Pause()
		return nil
	case "seek":
		if len(fields) != 2 {
			return errors.New("usage: seek <seconds>")
		}
		target, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return fmt.Errorf("seek: %q is not a number", fields[1])
		}
		return eng.Seek(target)
	case "stop":
		return eng.Stop()
	case "status":
		st := eng.Snapshot()
		fmt.Printf("\n%s at %.2fs / %.2fs\n", st.Phase, st.Position, st.Duration)
		return nil
	case "quit", "q", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

func printHeader(info audiofile.Info, buf *audiofile.Buffer) {
	title := info.Title
	if info.Artist != "" {
		title = info.Artist + " - " + title
	}
	fmt.Printf("%s\n%d ch, %d Hz, %.2fs\n", title, buf.Channels(), buf.SampleRate(), buf.Duration())
}

// resolvePath makes relative paths resolve against the configured
// default folder when they do not exist relative to the cwd.
func resolvePath(cfg *config.Config, path string) string {
	if filepath.IsAbs(path) || cfg.DefaultFolder == "" {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	if candidate := filepath.Join(cfg.DefaultFolder, path); fileExists(candidate) {
		return candidate
	}
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
