// Package daemon runs the watch-transcribe-file service and its control
// socket.
package daemon

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/calebmatthews/vaultscribe/internal/bus"
	"github.com/calebmatthews/vaultscribe/internal/config"
	"github.com/calebmatthews/vaultscribe/internal/formatter"
	"github.com/calebmatthews/vaultscribe/internal/pipeline"
	"github.com/calebmatthews/vaultscribe/internal/tags"
	"github.com/calebmatthews/vaultscribe/internal/transcriber"
	"github.com/calebmatthews/vaultscribe/internal/vault"
	"github.com/calebmatthews/vaultscribe/internal/watcher"
)

type Daemon struct {
	manager *config.Manager
	tagSet  *tags.Set
	watcher *watcher.Watcher

	// ctx governs the service surfaces (watcher, config reload, control
	// socket). itemCtx governs pipeline work and outlives ctx so a shutdown
	// lets the recording in flight finish instead of killing whisper-cli
	// mid-transcription. A second signal cancels itemCtx too.
	ctx        context.Context
	cancel     context.CancelFunc
	itemCtx    context.Context
	itemCancel context.CancelFunc
	wg         sync.WaitGroup

	process func(ctx context.Context, item watcher.Item) error

	startedAt time.Time
	processed atomic.Int64
	failed    atomic.Int64
	current   atomic.Value // string: path of the item in flight, "" when idle
}

// New loads configuration and builds the long-lived pieces: the tag set
// (fixed for the lifetime of a run) and the folder watcher (an unreachable
// watch directory is fatal here).
func New() (*Daemon, error) {
	manager, err := config.NewManager()
	if err != nil {
		return nil, err
	}
	cfg := manager.GetConfig()

	tagSet, err := tags.Load(cfg.TagsFilePath(), cfg.Vault.TagNamespace)
	if err != nil {
		return nil, fmt.Errorf("load allowed tags: %w", err)
	}

	fw, err := watcher.New(cfg.ToWatcherConfig())
	if err != nil {
		return nil, err
	}

	return newDaemon(manager, tagSet, fw), nil
}

func newDaemon(manager *config.Manager, tagSet *tags.Set, fw *watcher.Watcher) *Daemon {
	d := &Daemon{
		manager:   manager,
		tagSet:    tagSet,
		watcher:   fw,
		startedAt: time.Now(),
	}
	d.ctx, d.cancel = context.WithCancel(context.Background())
	d.itemCtx, d.itemCancel = context.WithCancel(context.Background())
	d.process = d.processItem
	d.current.Store("")
	return d
}

func (d *Daemon) Run() error {
	if err := bus.CheckExistingDaemon(); err != nil {
		return err
	}

	ln, err := bus.Listen()
	if err != nil {
		return err
	}
	defer ln.Close()

	if err := bus.CreatePidFile(); err != nil {
		return fmt.Errorf("failed to create PID file: %w", err)
	}
	defer bus.RemovePidFile()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	go func() {
		sig := <-sigCh
		log.Printf("Daemon: received signal %v, finishing the item in flight", sig)
		d.cancel()
		sig = <-sigCh
		log.Printf("Daemon: received second signal %v, aborting", sig)
		d.itemCancel()
	}()
	defer d.itemCancel()

	go func() {
		<-d.ctx.Done()
		ln.Close()
	}()

	if err := d.manager.StartWatching(d.ctx); err != nil {
		log.Printf("Daemon: config hot reload unavailable: %v", err)
	}
	defer d.manager.Stop()

	items, err := d.watcher.Watch(d.ctx)
	if err != nil {
		return err
	}
	defer d.watcher.Stop()

	d.wg.Add(1)
	go d.processLoop(items)

	log.Printf("Daemon: started, listening on control socket")

	for {
		c, err := ln.Accept()
		if err != nil {
			if d.ctx.Err() != nil {
				log.Printf("Daemon: shutdown requested")
				d.wg.Wait()
				return nil
			}
			log.Printf("Daemon: accept error: %v", err)
			return fmt.Errorf("accept failed: %w", err)
		}
		go d.handle(c)
	}
}

// processLoop drains the watcher sequentially: one recording is fully filed
// (or abandoned) before the next is touched. The pipeline is rebuilt from
// the freshest config per item so hot-reloaded model settings apply.
// Items run on itemCtx, so the loop keeps working through a graceful
// shutdown until the watcher closes the channel.
func (d *Daemon) processLoop(items <-chan watcher.Item) {
	defer d.wg.Done()

	for item := range items {
		d.current.Store(item.Path)
		if err := d.process(d.itemCtx, item); err != nil {
			d.failed.Add(1)
			log.Printf("Daemon: item failed: %v", err)
		} else {
			d.processed.Add(1)
		}
		d.current.Store("")
	}
}

func (d *Daemon) processItem(ctx context.Context, item watcher.Item) error {
	cfg := d.manager.GetConfig()

	tr, err := transcriber.New(cfg.ToTranscriberConfig())
	if err != nil {
		return fmt.Errorf("build transcriber: %w", err)
	}
	f, err := formatter.New(cfg.ToFormatterConfig())
	if err != nil {
		return fmt.Errorf("build formatter: %w", err)
	}

	w := vault.NewWriter(cfg.Vault.Path, cfg.Vault.NotesFolder)
	p := pipeline.New(cfg.ToPipelineConfig(), tr, f, d.tagSet, w, cfg.Notifier())

	_, err = p.Process(ctx, item)
	return err
}

func (d *Daemon) handle(c net.Conn) {
	defer c.Close()

	line, err := bufio.NewReader(c).ReadString('\n')
	if err != nil {
		log.Printf("Daemon: client read error: %v", err)
		fmt.Fprintf(c, "ERR read_error: %v\n", err)
		return
	}
	if len(line) == 0 {
		fmt.Fprint(c, "ERR empty\n")
		return
	}

	switch cmd := line[0]; cmd {
	case 's':
		state := "idle"
		if cur := d.current.Load().(string); cur != "" {
			state = "processing " + cur
		}
		fmt.Fprintf(c, "STATUS state=%s processed=%d failed=%d uptime=%s\n",
			state, d.processed.Load(), d.failed.Load(),
			time.Since(d.startedAt).Round(time.Second))
	case 'v':
		fmt.Fprintf(c, "STATUS proto=%s\n", bus.ProtoVer)
	case 'q':
		fmt.Fprint(c, "OK quitting\n")
		d.cancel()
	default:
		log.Printf("Daemon: unknown command: %c", cmd)
		fmt.Fprintf(c, "ERR unknown=%q\n", cmd)
	}
}
