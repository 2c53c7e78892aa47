// Command tutor plays a lesson or a full game in the terminal. Mouse clicks
// select and move pieces; keys undo, reset, flip and choose promotions.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/apex/log/handlers/discard"
	"github.com/apex/log/handlers/text"
	"github.com/gdamore/tcell/v2"

	"github.com/benbeisheim/boardtutor-backend/internal/lesson"
	"github.com/benbeisheim/boardtutor-backend/internal/model"
	"github.com/benbeisheim/boardtutor-backend/internal/service"
)

func main() {
	variant := flag.String("variant", "chess", "chess or xiangqi")
	lessonID := flag.String("lesson", "", "lesson id, empty for a full game")
	fen := flag.String("fen", "", "chess start position for a full game")
	strict := flag.Bool("strict", false, "filter self-check moves and detect checkmate in chess")
	logPath := flag.String("log", "", "write debug logs to this file")
	list := flag.Bool("list", false, "print the lessons of -variant and exit")
	flag.Parse()

	log.SetHandler(cli.New(os.Stderr))

	if *list {
		lessons := lesson.Catalog(model.Variant(*variant))
		if lessons == nil {
			log.Fatalf("unknown variant %q", *variant)
		}
		for _, l := range lessons {
			fmt.Printf("%-18s %s\n", l.ID, l.Title)
		}
		return
	}

	sm := service.NewSessionManager(service.ManagerConfig{StrictChess: *strict})
	defer sm.Close()

	t, err := newTutor(service.NewSessionService(sm), service.CreateRequest{
		Variant: model.Variant(*variant),
		Lesson:  *lessonID,
		FEN:     *fen,
	})
	if err != nil {
		log.WithError(err).Fatal("cannot start")
	}

	// The screen owns the terminal from here on.
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.WithError(err).Fatal("open log file")
		}
		defer f.Close()
		log.SetHandler(text.New(f))
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetHandler(discard.New())
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.SetHandler(cli.New(os.Stderr))
		log.WithError(err).Fatal("open terminal")
	}
	if err := screen.Init(); err != nil {
		log.SetHandler(cli.New(os.Stderr))
		log.WithError(err).Fatal("init terminal")
	}
	screen.EnableMouse()
	defer screen.Fini()

	t.run(screen)
}
