package main

import (
	"log"
	"net/http"
	"sync"

	"github.com/antfarm/dmgcore/internal/gameboy"
	"github.com/cespare/xxhash"
	"github.com/gorilla/websocket"
)

// frameCache is a small ring of recently-broadcast frame hashes, used to
// skip rebroadcasting an unchanged frame (many DMG titles hold a
// static screen for many consecutive VBlanks). Grounded on
// thelolagemann-gomeboy/pkg/display/web/cache.go's duplicate-frame
// cache, trimmed down to a fixed-size ring of frame hashes.
type frameCache struct {
	hashes []uint64
	idx    int
}

func newFrameCache(size int) *frameCache { return &frameCache{hashes: make([]uint64, size)} }

func (c *frameCache) seen(h uint64) bool {
	for _, v := range c.hashes {
		if v == h {
			return true
		}
	}
	return false
}

func (c *frameCache) add(h uint64) {
	c.hashes[c.idx] = h
	c.idx = (c.idx + 1) % len(c.hashes)
}

// wsFrontend is the websocket-pushed alternate front end: a second
// implementation of gameboy.PixelSink that hashes each frame with
// xxhash, skips broadcasting unchanged frames, and pushes the rest to
// connected clients as raw RGBA. Grounded on
// thelolagemann-gomeboy/pkg/display/web/{hub,client,cache}.go, trimmed
// from that package's multiplayer/compression machinery down to plain
// frame broadcast.
type wsFrontend struct {
	gb  *gameboy.GameBoy
	pix []byte // RGBA scratch buffer, 160*144*4

	mu      sync.Mutex
	clients map[*websocket.Conn]chan []byte
	cache   *frameCache
}

func newWSFrontend(gb *gameboy.GameBoy) *wsFrontend {
	w := &wsFrontend{
		gb:      gb,
		pix:     make([]byte, 160*144*4),
		clients: make(map[*websocket.Conn]chan []byte),
		cache:   newFrameCache(4),
	}
	gb.SetPixelSink(w)
	return w
}

func (w *wsFrontend) Frame(pixels *[144][160]byte) {
	for y := 0; y < 144; y++ {
		for x := 0; x < 160; x++ {
			c := dmgPalette[pixels[y][x]&0x03]
			i := (y*160 + x) * 4
			w.pix[i+0] = c.R
			w.pix[i+1] = c.G
			w.pix[i+2] = c.B
			w.pix[i+3] = c.A
		}
	}

	h := xxhash.Sum64(w.pix)
	if w.cache.seen(h) {
		return
	}
	w.cache.add(h)

	frame := make([]byte, len(w.pix))
	copy(frame, w.pix)

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, send := range w.clients {
		select {
		case send <- frame:
		default:
		}
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024 * 92, // one full 160x144 RGBA frame
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (w *wsFrontend) handleConn(rw http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(rw, r, nil)
	if err != nil {
		return
	}
	send := make(chan []byte, 4)
	w.mu.Lock()
	w.clients[conn] = send
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		delete(w.clients, conn)
		w.mu.Unlock()
		conn.Close()
	}()

	for frame := range send {
		if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
			return
		}
	}
}

// Serve runs the host loop (RunFrame called back to back, with no frame
// pacing) and an HTTP server that upgrades connections to a raw-RGBA
// frame stream at addr.
func (w *wsFrontend) Serve(addr string) error {
	http.HandleFunc("/", w.handleConn)
	go func() {
		log.Printf("gbemu: websocket front end listening on %s", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Fatalf("gbemu: websocket server: %v", err)
		}
	}()
	for {
		w.gb.RunFrame()
	}
}
