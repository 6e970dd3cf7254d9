package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gdbfront/internal/annotate"
	. "gdbfront/internal/config"
	"gdbfront/internal/gdb"
	"gdbfront/internal/io"
	. "gdbfront/internal/logger"
	"gdbfront/internal/server"
)

// Publisher is where debugger output ends up: the websocket clients or stdout.
type Publisher interface {
	Broadcast(msg server.Message)
}

func main() {
	Log.Start()
	defer Log.Stop()

	config := GetConfig()
	session, err := gdb.Start(config, os.Args[1:]...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gdbfront:", err)
		Log.Stop()
		os.Exit(1)
	}
	defer session.Stop()

	var publisher Publisher
	var svr *server.Server
	if config.Listen != "" {
		svr = server.New(session)
		publisher = svr
		go func() {
			if err := svr.Listen(config.Listen); err != nil {
				Log.Error("server:", err.Error())
				session.Stop()
			}
		}()
	} else {
		publisher = NewPrinter(os.Stdout)
		go Repl(os.Stdin, session)
	}

	var watcher *io.SourceWatcher
	if config.WatchSources() {
		watcher = io.NewSourceWatcher()
		watcher.StartWatch(func(path string) { publisher.Broadcast(server.SourceChangedMessage(path)) })
		defer watcher.Stop()
	}

	done := make(chan struct{})
	go session.Forward(done,
		func(e annotate.Event) {
			if watcher != nil { watchEvent(watcher, e) }
			publisher.Broadcast(server.EventMessage(e))
		},
		func(line string) { publisher.Broadcast(server.ConsoleMessage(line)) },
	)

	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case <-session.Done():
		Log.Info("debugger exited")
	case sig := <-interrupted:
		Log.Info("exiting on", sig.String())
	}
	close(done)
	if svr != nil { svr.Shutdown() }
}

func watchEvent(watcher *io.SourceWatcher, e annotate.Event) {
	switch e.Type {
	case annotate.SourceFileUpdate, annotate.AbsoluteSourceAccepted:
		if err := watcher.Add(e.Data); err != nil {
			Log.Error("watch source:", err.Error())
		}
	}
}
