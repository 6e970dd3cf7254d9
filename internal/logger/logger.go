package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

var Log = Logger{}

type Logger struct {
	isEnabled bool
	file      *os.File
	stream    chan string
	done      chan struct{}
	logger    *log.Logger
	layout    string
	mu        sync.RWMutex // held for writing only by Stop
}

// Start enables logging when GDBFRONT_LOG names a file, otherwise every call is a no-op.
func (this *Logger) Start() {
	logfilename, exists := os.LookupEnv("GDBFRONT_LOG")
	if !exists || logfilename == "" { this.isEnabled = false; return }

	file, err := os.OpenFile(logfilename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil { log.Fatal(err) }
	this.file = file

	this.logger = log.New(file, "", 0)
	this.layout = "2006-01-02 15:04:05.000"

	this.stream = make(chan string, 64)
	this.done = make(chan struct{})
	this.isEnabled = true

	go func() {
		for message := range this.stream {
			this.log(message)
		}
		close(this.done)
	}()
}

func (this *Logger) log(message string) {
	now := time.Now().Format(this.layout)
	this.logger.Printf("%s %s", now, message)
}

func (this *Logger) send(message string) {
	this.mu.RLock()
	defer this.mu.RUnlock()
	if !this.isEnabled { return }
	this.stream <- message
}

func (this *Logger) Info(args ...string) {
	this.send(strings.Join(args, " "))
}

func (this *Logger) Infof(format string, args ...any) {
	this.send(fmt.Sprintf(format, args...))
}

func (this *Logger) Error(args ...string) {
	this.send("[error] " + strings.Join(args, " "))
}

// Stop flushes pending messages and closes the log file.
func (this *Logger) Stop() {
	this.mu.Lock()
	if !this.isEnabled { this.mu.Unlock(); return }
	this.isEnabled = false
	this.mu.Unlock()
	close(this.stream)
	<-this.done
	err := this.file.Close()
	if err != nil { return }
}
