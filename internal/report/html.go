package report

import (
	"fmt"
	"html"
	"os"
	"strings"
	"time"
)

// GenerateHTML writes a standalone report page. Finding text is
// entity-escaped before it hits the template: the details column holds
// the very markup payloads this tool exists to flag.
func GenerateHTML(r *Report, filename string) error {
	htmlTemplate := `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>webvet Probe Report</title>
	<style>
		* { margin: 0; padding: 0; box-sizing: border-box; }
		body {
			font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
			background: #f5f5f5;
			padding: 20px;
			color: #333;
		}
		.container { max-width: 1200px; margin: 0 auto; background: white; padding: 30px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
		h1 { font-size: 24px; margin-bottom: 10px; color: #222; }
		.meta { color: #666; font-size: 14px; margin-bottom: 30px; }
		.stats {
			display: grid;
			grid-template-columns: repeat(auto-fit, minmax(150px, 1fr));
			gap: 15px;
			margin-bottom: 30px;
		}
		.stat-card { background: #f9f9f9; padding: 15px; border-radius: 6px; border-left: 3px solid #007bff; }
		.stat-value { font-size: 24px; font-weight: bold; color: #007bff; }
		.stat-label { font-size: 12px; color: #666; margin-top: 5px; }
		.verdict-banner { padding: 12px 15px; border-radius: 6px; font-weight: 600; margin-bottom: 30px; }
		.verdict-success { background: #d4edda; color: #155724; }
		.verdict-failure { background: #f8d7da; color: #721c24; }
		table { width: 100%%; border-collapse: collapse; font-size: 14px; }
		th { background: #f0f0f0; padding: 12px; text-align: left; font-weight: 600; border-bottom: 2px solid #ddd; }
		td { padding: 10px 12px; border-bottom: 1px solid #eee; }
		tr:hover { background: #f9f9f9; }
		.badge {
			display: inline-block;
			padding: 3px 8px;
			border-radius: 4px;
			font-size: 11px;
			font-weight: 600;
		}
		.badge-pass { background: #28a745; color: white; }
		.badge-fail { background: #dc3545; color: white; }
		.badge-warn { background: #ffc107; color: #333; }
		code { background: #f4f4f4; padding: 2px 6px; border-radius: 3px; font-family: monospace; font-size: 13px; }
	</style>
</head>
<body>
	<div class="container">
		<h1>webvet Probe Report</h1>
		<div class="meta">Target: <code>%s</code> &middot; Run %s &middot; Generated %s</div>

		<div class="verdict-banner %s">%s</div>

		<div class="stats">
			<div class="stat-card">
				<div class="stat-value">%d</div>
				<div class="stat-label">Findings</div>
			</div>
			<div class="stat-card">
				<div class="stat-value">%d</div>
				<div class="stat-label">Pass</div>
			</div>
			<div class="stat-card">
				<div class="stat-value">%d</div>
				<div class="stat-label">Fail</div>
			</div>
			<div class="stat-card">
				<div class="stat-value">%d</div>
				<div class="stat-label">Warn</div>
			</div>
		</div>

		<table>
			<thead>
				<tr>
					<th>Verdict</th>
					<th>Category</th>
					<th>Message</th>
					<th>Detail</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
		</table>
	</div>
</body>
</html>`

	var rows strings.Builder
	for _, f := range r.Findings() {
		badge := "badge-warn"
		switch f.Verdict {
		case "pass":
			badge = "badge-pass"
		case "fail":
			badge = "badge-fail"
		}

		detail := ""
		if f.Detail != "" {
			detail = fmt.Sprintf("<code>%s</code>", html.EscapeString(f.Detail))
		}

		rows.WriteString(fmt.Sprintf(`
				<tr>
					<td><span class="badge %s">%s</span></td>
					<td>%s</td>
					<td>%s</td>
					<td>%s</td>
				</tr>`,
			badge,
			strings.ToUpper(string(f.Verdict)),
			html.EscapeString(string(f.Category)),
			html.EscapeString(f.Message),
			detail))
	}

	verdictClass := "verdict-success"
	verdictText := "No vulnerabilities indicated"
	if !r.Success() {
		verdictClass = "verdict-failure"
		verdictText = fmt.Sprintf("%d finding(s) indicate vulnerabilities", r.FailCount())
	}

	finalHTML := fmt.Sprintf(htmlTemplate,
		html.EscapeString(r.Target),
		html.EscapeString(r.RunID),
		time.Now().Format("2006-01-02 15:04:05"),
		verdictClass,
		verdictText,
		len(r.Findings()),
		r.PassCount(),
		r.FailCount(),
		r.WarnCount(),
		rows.String())

	return os.WriteFile(filename, []byte(finalHTML), 0644)
}
