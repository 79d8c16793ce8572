//go:build linux

package window

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

const (
	glxRGBA         = 4
	glxDoubleBuffer = 5
	glxDepthSize    = 12
	glxNone         = 0

	inputOutput = 1

	exposureMask        = 1 << 15
	structureNotifyMask = 1 << 17
	keyPressMask        = 1 << 0
	keyReleaseMask      = 1 << 1
	pointerMotionMask   = 1 << 6

	keyPress        = 2
	keyRelease      = 3
	motionNotify    = 6
	destroyNotify   = 17
	configureNotify = 22
	clientMessage   = 33
)

// xEvent is the XEvent union: 24 longs, aligned for every member.
type xEvent [24]uint64

type XVisualInfo struct {
	Visual       uintptr
	VisualID     uint
	Screen       int32
	Depth        int32
	Class        int32
	RedMask      uint64
	GreenMask    uint64
	BlueMask     uint64
	ColormapSize int32
	BitsPerRGB   int32
	MapEntries   int32
	pad          int32
}

type xclientMessage struct {
	Type        int32
	Serial      uint64
	SendEvent   int32
	Display     uintptr
	Window      uintptr
	MessageType uintptr
	Format      int32
	Data        [5]uint64
}

// XKeyEvent and XMotionEvent share this prefix; MotionNotify stores is_hint
// where KeyPress stores the keycode.
type xinputEvent struct {
	Type       int32
	Serial     uint64
	SendEvent  int32
	Display    uintptr
	Window     uintptr
	Root       uintptr
	Subwindow  uintptr
	Time       uint64
	X, Y       int32
	XRoot      int32
	YRoot      int32
	State      uint32
	Keycode    uint32
	SameScreen int32
}

type xconfigureEvent struct {
	Type             int32
	Serial           uint64
	SendEvent        int32
	Display          uintptr
	Event            uintptr
	Window           uintptr
	X, Y             int32
	Width, Height    int32
	BorderWidth      int32
	Above            uintptr
	OverrideRedirect int32
}

var (
	x11lib uintptr
	gllib  uintptr

	xInitThreads    func() int32
	xOpenDisplay    func(*byte) uintptr
	xDefaultScreen  func(uintptr) int32
	xRootWindow     func(uintptr, int32) uintptr
	xCreateColormap func(uintptr, uintptr, uintptr, int32) uintptr
	xCreateWindow   func(uintptr, uintptr, int32, int32, uint32, uint32, uint32, int32, uint32, uintptr, uint64, unsafe.Pointer) uintptr
	xMapWindow      func(uintptr, uintptr) int32
	xUnmapWindow    func(uintptr, uintptr) int32
	xStoreName      func(uintptr, uintptr, *byte) int32
	xInternAtom     func(uintptr, *byte, int32) uintptr
	xSetWMProtocols func(uintptr, uintptr, *uintptr, int32) int32
	xSelectInput    func(uintptr, uintptr, int64)
	xNextEvent      func(uintptr, unsafe.Pointer)
	xSendEvent      func(uintptr, uintptr, int32, int64, unsafe.Pointer) int32
	xFlush          func(uintptr) int32
	xLookupKeysym   func(unsafe.Pointer, int32) uint64
	xGetGeometry    func(uintptr, uintptr, *uintptr, *int32, *int32, *uint32, *uint32, *uint32, *uint32) int32
	xDestroyWindow  func(uintptr, uintptr) int32
	xCloseDisplay   func(uintptr) int32

	xkbSetDetectableAutoRepeat func(uintptr, int32, *int32) int32

	glxChooseVisual       func(uintptr, int32, *int32) *XVisualInfo
	glxCreateContext      func(uintptr, *XVisualInfo, uintptr, int32) uintptr
	glxMakeCurrent        func(uintptr, uintptr, uintptr) int32
	glxSwapBuffers        func(uintptr, uintptr)
	glxGetProcAddressARB  func(*byte) uintptr
	glxSwapIntervalEXT    func(uintptr, uintptr, int32)
	glxSwapIntervalMESA   func(uint32) int32
	glxSwapIntervalSGI    func(int32) int32
	swapIntervalResolving sync.Once
)

type x11Window struct {
	display  uintptr
	window   uintptr
	ctx      uintptr
	wmDelete uintptr
	wake     uintptr
	vsync    bool

	// Touched only by the event thread.
	width, height int
	lastX, lastY  int32
	havePointer   bool
	closed        bool

	mu       sync.Mutex // guards current and the surface size
	current  bool
	surfaceW int
	surfaceH int
}

// New opens an X11 window with a GLX context. The context is created but not
// made current; the render thread claims it with MakeCurrent.
func New(opts Options) (Window, error) {
	runtime.LockOSThread()
	if err := ensureLibs(); err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}

	// The event thread and the render thread share the display connection.
	if xInitThreads() == 0 {
		runtime.UnlockOSThread()
		return nil, errors.New("XInitThreads failed")
	}

	dpy := xOpenDisplay(nil)
	if dpy == 0 {
		runtime.UnlockOSThread()
		return nil, ErrNoDisplay
	}

	screen := xDefaultScreen(dpy)
	root := xRootWindow(dpy, screen)

	attrs := []int32{glxRGBA, glxDoubleBuffer, glxDepthSize, 24, glxNone}
	visual := glxChooseVisual(dpy, screen, &attrs[0])
	if visual == nil {
		xCloseDisplay(dpy)
		runtime.UnlockOSThread()
		return nil, errors.New("glXChooseVisual failed")
	}

	cmap := xCreateColormap(dpy, root, visual.Visual, 0)

	var swa xSetWindowAttributes
	swa.Colormap = cmap
	swa.EventMask = exposureMask | structureNotifyMask | keyPressMask | keyReleaseMask | pointerMotionMask

	const (
		cwColormap    = 1 << 13
		cwEventMask   = 1 << 11
		cwBorderPixel = 1 << 3
	)

	win := xCreateWindow(
		dpy, root,
		0, 0,
		uint32(opts.Width), uint32(opts.Height),
		0,
		visual.Depth,
		inputOutput,
		visual.Visual,
		cwBorderPixel|cwColormap|cwEventMask,
		unsafe.Pointer(&swa),
	)
	if win == 0 {
		xCloseDisplay(dpy)
		runtime.UnlockOSThread()
		return nil, errors.New("XCreateWindow failed")
	}
	xSelectInput(dpy, win, swa.EventMask)

	titleBytes := append([]byte(opts.Title), 0)
	xStoreName(dpy, win, &titleBytes[0])
	xMapWindow(dpy, win)

	wmDelete := xInternAtom(dpy, cString("WM_DELETE_WINDOW"), 0)
	xSetWMProtocols(dpy, win, &wmDelete, 1)
	wake := xInternAtom(dpy, cString("GLOOM_WAKE"), 0)

	// Held keys would otherwise arrive as release/press pairs.
	if xkbSetDetectableAutoRepeat != nil {
		var supported int32
		xkbSetDetectableAutoRepeat(dpy, 1, &supported)
	}

	ctx := glxCreateContext(dpy, visual, 0, 1)
	if ctx == 0 {
		xDestroyWindow(dpy, win)
		xCloseDisplay(dpy)
		runtime.UnlockOSThread()
		return nil, errors.New("glXCreateContext failed")
	}

	w := &x11Window{
		display:  dpy,
		window:   win,
		ctx:      ctx,
		wmDelete: wmDelete,
		wake:     wake,
		vsync:    opts.VSync,
		width:    opts.Width,
		height:   opts.Height,
		surfaceW: opts.Width,
		surfaceH: opts.Height,
	}
	return w, nil
}

func (w *x11Window) MakeCurrent() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current {
		return errors.New("glx context is already current")
	}
	if glxMakeCurrent(w.display, w.window, w.ctx) == 0 {
		return errors.New("glXMakeCurrent failed")
	}
	w.current = true

	if w.vsync {
		w.enableVSync()
	}
	return nil
}

func (w *x11Window) enableVSync() {
	swapIntervalResolving.Do(func() {
		if addr := w.ProcAddress("glXSwapIntervalEXT"); addr != 0 {
			purego.RegisterFunc(&glxSwapIntervalEXT, addr)
		}
		if addr := w.ProcAddress("glXSwapIntervalMESA"); addr != 0 {
			purego.RegisterFunc(&glxSwapIntervalMESA, addr)
		}
		if addr := w.ProcAddress("glXSwapIntervalSGI"); addr != 0 {
			purego.RegisterFunc(&glxSwapIntervalSGI, addr)
		}
	})
	switch {
	case glxSwapIntervalEXT != nil:
		glxSwapIntervalEXT(w.display, w.window, 1)
	case glxSwapIntervalMESA != nil:
		glxSwapIntervalMESA(1)
	case glxSwapIntervalSGI != nil:
		glxSwapIntervalSGI(1)
	}
}

func (w *x11Window) ProcAddress(name string) uintptr {
	return glxGetProcAddressARB(cString(name))
}

// Resize records the new surface size. GLX drawables track the X window, so
// there is no separate surface to reallocate.
func (w *x11Window) Resize(width, height int) {
	w.mu.Lock()
	w.surfaceW, w.surfaceH = width, height
	w.mu.Unlock()
}

func (w *x11Window) Swap() {
	glxSwapBuffers(w.display, w.window)
}

func (w *x11Window) WaitEvent() Event {
	for {
		var ev xEvent
		xNextEvent(w.display, unsafe.Pointer(&ev))
		if e, ok := w.translate(&ev); ok {
			return e
		}
	}
}

func (w *x11Window) translate(ev *xEvent) (Event, bool) {
	etype := *(*int32)(unsafe.Pointer(ev))
	switch etype {
	case configureNotify:
		ce := (*xconfigureEvent)(unsafe.Pointer(ev))
		width, height := int(ce.Width), int(ce.Height)
		if width == w.width && height == w.height {
			return nil, false
		}
		w.width, w.height = width, height
		return ResizeEvent{Width: width, Height: height}, true
	case clientMessage:
		cm := (*xclientMessage)(unsafe.Pointer(ev))
		if cm.MessageType == w.wake {
			return WakeEvent{}, true
		}
		if cm.Format == 32 && cm.Data[0] == uint64(w.wmDelete) {
			return CloseEvent{}, true
		}
	case destroyNotify:
		return CloseEvent{}, true
	case keyPress, keyRelease:
		sym := xLookupKeysym(unsafe.Pointer(ev), 0)
		state := KeyPressed
		if etype == keyRelease {
			state = KeyReleased
		}
		return KeyEvent{Key: keyFromSym(sym), State: state}, true
	case motionNotify:
		me := (*xinputEvent)(unsafe.Pointer(ev))
		if !w.havePointer {
			w.lastX, w.lastY, w.havePointer = me.X, me.Y, true
			return nil, false
		}
		dx, dy := me.X-w.lastX, me.Y-w.lastY
		w.lastX, w.lastY = me.X, me.Y
		return MouseMotionEvent{DX: float64(dx), DY: float64(dy)}, true
	}
	return nil, false
}

func (w *x11Window) Wake() {
	cm := xclientMessage{
		Type:        clientMessage,
		Display:     w.display,
		Window:      w.window,
		MessageType: w.wake,
		Format:      32,
	}
	var ev xEvent
	*(*xclientMessage)(unsafe.Pointer(&ev)) = cm
	xSendEvent(w.display, w.window, 0, 0, unsafe.Pointer(&ev))
	xFlush(w.display)
}

func (w *x11Window) Size() (int, int) {
	var root uintptr
	var x, y int32
	var width, height uint32
	var border, depth uint32
	if xGetGeometry(w.display, w.window, &root, &x, &y, &width, &height, &border, &depth) == 0 {
		return 0, 0
	}
	return int(width), int(height)
}

// Close hides the window. The display connection, window and context stay
// allocated until process exit because the render thread may still be
// presenting into them.
func (w *x11Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	xUnmapWindow(w.display, w.window)
	xFlush(w.display)
	runtime.UnlockOSThread()
}

type xSetWindowAttributes struct {
	BackgroundPixmap uintptr
	BackgroundPixel  uint64
	BorderPixmap     uint64
	BorderPixel      uint64
	BitGravity       int32
	WinGravity       int32
	BackingStore     int32
	BackingPlanes    uint64
	BackingPixel     uint64
	SaveUnder        int32
	EventMask        int64
	DoNotPropagate   int64
	OverrideRedirect int32
	Colormap         uintptr
	Cursor           uintptr
}

func ensureLibs() error {
	var err error
	if x11lib == 0 {
		x11lib, err = purego.Dlopen("libX11.so.6", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			return fmt.Errorf("load libX11: %w", err)
		}
		registerX11()
	}
	if gllib == 0 {
		gllib, err = purego.Dlopen("libGL.so.1", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			return fmt.Errorf("load libGL: %w", err)
		}
		registerGLX()
	}
	return nil
}

func registerX11() {
	purego.RegisterLibFunc(&xInitThreads, x11lib, "XInitThreads")
	purego.RegisterLibFunc(&xOpenDisplay, x11lib, "XOpenDisplay")
	purego.RegisterLibFunc(&xDefaultScreen, x11lib, "XDefaultScreen")
	purego.RegisterLibFunc(&xRootWindow, x11lib, "XRootWindow")
	purego.RegisterLibFunc(&xCreateColormap, x11lib, "XCreateColormap")
	purego.RegisterLibFunc(&xCreateWindow, x11lib, "XCreateWindow")
	purego.RegisterLibFunc(&xMapWindow, x11lib, "XMapWindow")
	purego.RegisterLibFunc(&xUnmapWindow, x11lib, "XUnmapWindow")
	purego.RegisterLibFunc(&xStoreName, x11lib, "XStoreName")
	purego.RegisterLibFunc(&xInternAtom, x11lib, "XInternAtom")
	purego.RegisterLibFunc(&xSetWMProtocols, x11lib, "XSetWMProtocols")
	purego.RegisterLibFunc(&xSelectInput, x11lib, "XSelectInput")
	purego.RegisterLibFunc(&xNextEvent, x11lib, "XNextEvent")
	purego.RegisterLibFunc(&xSendEvent, x11lib, "XSendEvent")
	purego.RegisterLibFunc(&xFlush, x11lib, "XFlush")
	purego.RegisterLibFunc(&xLookupKeysym, x11lib, "XLookupKeysym")
	purego.RegisterLibFunc(&xGetGeometry, x11lib, "XGetGeometry")
	purego.RegisterLibFunc(&xDestroyWindow, x11lib, "XDestroyWindow")
	purego.RegisterLibFunc(&xCloseDisplay, x11lib, "XCloseDisplay")
	// XKB is an extension; run without detectable auto-repeat if it is missing.
	if _, err := purego.Dlsym(x11lib, "XkbSetDetectableAutoRepeat"); err == nil {
		purego.RegisterLibFunc(&xkbSetDetectableAutoRepeat, x11lib, "XkbSetDetectableAutoRepeat")
	} else {
		xkbSetDetectableAutoRepeat = nil
	}
}

func registerGLX() {
	purego.RegisterLibFunc(&glxChooseVisual, gllib, "glXChooseVisual")
	purego.RegisterLibFunc(&glxCreateContext, gllib, "glXCreateContext")
	purego.RegisterLibFunc(&glxMakeCurrent, gllib, "glXMakeCurrent")
	purego.RegisterLibFunc(&glxSwapBuffers, gllib, "glXSwapBuffers")
	purego.RegisterLibFunc(&glxGetProcAddressARB, gllib, "glXGetProcAddressARB")
}

func cString(s string) *byte {
	b := append([]byte(s), 0)
	return &b[0]
}
