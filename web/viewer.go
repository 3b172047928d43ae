package web

import (
	"html/template"
	"net/http"

	"github.com/panyam/trendchart/logging"
)

// The viewer polls the SVG chart and forwards wheel and drag input to the
// interaction endpoints. Drag positions are sent in X-axis units, mapped
// through the range the server reports as visible.
var viewerTemplate = template.Must(template.New("viewer").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <style>
    body { font-family: sans-serif; margin: 16px; }
    #chart { border: 1px solid #e5e7eb; cursor: grab; user-select: none; }
    #status { color: #6b7280; font-size: 12px; margin-top: 6px; }
  </style>
</head>
<body>
  <img id="chart" src="/chart.svg" width="{{.Width}}" height="{{.Height}}" draggable="false">
  <div>
    <label><input type="checkbox" id="move"> pan and zoom</label>
    <button id="reset">reset</button>
  </div>
  <div id="status"></div>
  <script>
    const chart = document.getElementById("chart");
    const status = document.getElementById("status");
    let vp = null, dragging = false;

    function post(path) {
      return fetch(path, {method: "POST"}).then(r => r.json()).then(update);
    }
    function update(resp) {
      document.getElementById("move").checked = resp.moveEnabled;
      vp = {min: resp.range[0], max: resp.range[1]};
      status.textContent = resp.viewport.mode + (resp.viewport.mode === "manual" ? " [" + vp.min + ", " + vp.max + "]" : "");
      if (resp.changed) { refresh(); }
    }
    function refresh() { chart.src = "/chart.svg?t=" + Date.now(); }
    function viewport() { return fetch("/api/viewport").then(r => r.json()).then(update); }
    function toX(offsetX) { return vp.min + offsetX / chart.width * (vp.max - vp.min); }

    chart.addEventListener("wheel", ev => {
      ev.preventDefault();
      post("/api/zoom?delta=" + (-ev.deltaY / 100) + "&ctrl=" + ev.ctrlKey);
    });
    chart.addEventListener("mousedown", ev => {
      const offsetX = ev.offsetX;
      dragging = true;
      // auto-follow keeps moving, so take the current range before anchoring
      viewport().then(() => post("/api/drag/start?x=" + toX(offsetX)));
    });
    chart.addEventListener("mousemove", ev => { if (dragging && vp) post("/api/drag/move?x=" + toX(ev.offsetX)); });
    window.addEventListener("mouseup", () => { dragging = false; });
    document.getElementById("move").addEventListener("change", ev => post("/api/move?enabled=" + ev.target.checked));
    document.getElementById("reset").addEventListener("click", () => post("/api/reset"));

    viewport();
    setInterval(refresh, {{.RefreshMillis}});
  </script>
</body>
</html>`))

// ViewerConfig controls the HTML viewer page.
type ViewerConfig struct {
	Title         string
	Width, Height int
	RefreshMillis int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := viewerTemplate.Execute(w, s.viewer); err != nil {
		logging.Error("rendering viewer: %v", err)
	}
}
