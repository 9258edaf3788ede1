package monitor

import (
	"os"

	"submeet-api/config"

	"github.com/gin-gonic/gin"
)

func monitorToken() string {
	token := os.Getenv("MONITOR_TOKEN")
	if token == "" {
		token = "secret-token"
	}
	return token
}

// RegisterMonitorPage serves a small operator page that polls the health
// endpoint and tails the backend log.
func RegisterMonitorPage(router *gin.Engine) {
	router.GET("/monitor", func(c *gin.Context) {
		c.Data(200, "text/html; charset=utf-8", []byte(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>Submeet Monitor</title>
  <style>
    * { margin: 0; padding: 0; box-sizing: border-box; }

    body {
      background: #101418;
      color: #d8dee6;
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
      min-height: 100vh;
      padding: 20px;
    }

    .container { max-width: 1100px; margin: 0 auto; }

    h1 {
      font-size: 1.75rem;
      color: #8ab4f8;
      margin-bottom: 1.5rem;
    }

    .card {
      background: #171c22;
      border: 1px solid #242b33;
      border-radius: 10px;
      padding: 1.25rem;
      margin-bottom: 1.5rem;
    }

    #status { font-size: 1.1rem; font-weight: 600; }

    .logs-header {
      display: flex;
      justify-content: space-between;
      align-items: center;
      margin-bottom: 1rem;
    }

    #logs {
      background: #0b0e11;
      padding: 1rem;
      border-radius: 8px;
      max-height: 500px;
      overflow-y: auto;
      white-space: pre-wrap;
      font-family: 'Monaco', 'Consolas', monospace;
      font-size: 0.85rem;
      line-height: 1.5;
    }

    button {
      padding: 0.5rem 1rem;
      background: #2d5af0;
      color: #fff;
      border: none;
      border-radius: 6px;
      cursor: pointer;
      font-weight: 600;
    }

    button.paused { background: #c24a4a; }
  </style>
</head>
<body>
  <div class="container">
    <h1>Submeet Monitor</h1>

    <div class="card">
      <div id="status">Status: checking...</div>
    </div>

    <div class="card">
      <div class="logs-header">
        <div>Server Logs</div>
        <button onclick="toggleLive()" id="toggleBtn">Pause Live Logs</button>
      </div>
      <pre id="logs">Loading logs...</pre>
    </div>
  </div>

  <script>
    let liveLogs = true;
    const logsElement = document.getElementById('logs');
    const statusElement = document.getElementById('status');
    const toggleBtn = document.getElementById('toggleBtn');
    const token = new URLSearchParams(location.search).get('token') || 'secret-token';

    function fetchStatus() {
      fetch('/api/v1/health')
        .then(res => res.json())
        .then(data => {
          statusElement.textContent = 'Status: ' + (data.status === 'ok' ? '🟢 Online' : '🔴 Offline');
        })
        .catch(() => {
          statusElement.textContent = 'Status: 🔴 Offline';
        });
    }

    function fetchLogs() {
      if (!liveLogs) return;
      fetch('/logs?token=' + encodeURIComponent(token))
        .then(res => res.text())
        .then(data => {
          logsElement.textContent = data;
          logsElement.scrollTop = logsElement.scrollHeight;
        });
    }

    function toggleLive() {
      liveLogs = !liveLogs;
      toggleBtn.textContent = liveLogs ? 'Pause Live Logs' : 'Resume Live Logs';
      toggleBtn.classList.toggle('paused', !liveLogs);
    }

    fetchStatus();
    fetchLogs();
    setInterval(fetchStatus, 5000);
    setInterval(fetchLogs, 5000);
  </script>
</body>
</html>`))
	})
}

// RegisterLogsRoute exposes the raw log file behind a token check.
func RegisterLogsRoute(router *gin.Engine) {
	router.GET("/logs", func(c *gin.Context) {
		if c.Query("token") != monitorToken() {
			c.JSON(401, gin.H{"error": "Unauthorized"})
			return
		}
		logData, err := os.ReadFile(config.LogFilePath())
		if err != nil {
			c.JSON(500, gin.H{"error": "Unable to read log"})
			return
		}
		c.Data(200, "text/plain; charset=utf-8", logData)
	})
}
