package service

// cloneHTMLTemplate renders a CloneHTMLData as a self-contained HTML
// document: an overall score gauge in a Lighthouse-report style,
// followed by a table of the reported clone pairs.
const cloneHTMLTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>cloneradar report - {{.ProjectName}}</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            line-height: 1.6;
            color: #333;
            background-color: #f5f5f5;
        }
        .container { max-width: 1200px; margin: 0 auto; padding: 20px; }
        .header {
            text-align: center;
            background: white;
            padding: 40px 20px;
            border-radius: 8px;
            box-shadow: 0 2px 8px rgba(0,0,0,0.1);
            margin-bottom: 30px;
        }
        .header h1 { font-size: 2.5em; margin-bottom: 10px; color: #1a1a1a; }
        .header .timestamp { color: #666; font-size: 0.9em; }
        .score-section { display: flex; gap: 20px; margin-bottom: 30px; flex-wrap: wrap; }
        .score-card {
            background: white;
            padding: 30px;
            border-radius: 8px;
            box-shadow: 0 2px 8px rgba(0,0,0,0.1);
            flex: 1;
            min-width: 250px;
            text-align: center;
        }
        .score-circle {
            width: 120px;
            height: 120px;
            border-radius: 50%;
            margin: 0 auto 20px;
            display: flex;
            align-items: center;
            justify-content: center;
            font-size: 2em;
            font-weight: bold;
            color: white;
        }
        .score-label { font-size: 1.1em; font-weight: 600; margin-bottom: 10px; }
        .score-description { color: #666; font-size: 0.9em; }
        .details-section {
            background: white;
            padding: 30px;
            border-radius: 8px;
            box-shadow: 0 2px 8px rgba(0,0,0,0.1);
            margin-bottom: 20px;
        }
        .details-section h2 {
            margin-bottom: 20px;
            color: #1a1a1a;
            border-bottom: 2px solid #eee;
            padding-bottom: 10px;
        }
        .metric-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 20px;
            margin-bottom: 20px;
        }
        .metric-item { padding: 15px; background: #f8f9fa; border-radius: 4px; }
        .metric-item .value { font-size: 1.5em; font-weight: bold; color: #1a1a1a; }
        .metric-item .label { color: #666; font-size: 0.9em; }
        table { width: 100%; border-collapse: collapse; margin-top: 10px; }
        th, td {
            text-align: left;
            padding: 8px 10px;
            border-bottom: 1px solid #eee;
            font-size: 0.9em;
        }
        th { color: #666; font-weight: 600; }
        .tier-badge {
            display: inline-block;
            padding: 2px 8px;
            border-radius: 4px;
            color: white;
            font-size: 0.8em;
        }
        .tier-Type-1 { background-color: #0CCE6B; }
        .tier-Type-2 { background-color: #4CAF50; }
        .tier-Type-3 { background-color: #FFA500; }
        .tier-Type-4 { background-color: #FF7043; }
        .tier-none { background-color: #999; }
        .footer { text-align: center; padding: 20px; color: #666; font-size: 0.9em; }
        @media (max-width: 768px) {
            .score-section { flex-direction: column; }
            .metric-grid { grid-template-columns: 1fr; }
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>cloneradar report</h1>
            <div class="project-name">{{.ProjectName}}</div>
            <div class="timestamp">Generated on {{.Timestamp}}</div>
        </div>

        <div class="score-section">
            <div class="score-card">
                <div class="score-circle" style="background-color: {{.ScoreDetails.Color}};">
                    {{.ScoreDetails.Score}}
                </div>
                <div class="score-label">Clone Score</div>
                <div class="score-description">{{.ScoreDetails.Label}}</div>
            </div>
        </div>

        <div class="details-section">
            <h2>Summary</h2>
            <div class="metric-grid">
                <div class="metric-item">
                    <div class="value">{{.Response.Statistics.FilesAnalyzed}}</div>
                    <div class="label">Files Analyzed</div>
                </div>
                <div class="metric-item">
                    <div class="value">{{.Response.Statistics.FragmentsExtracted}}</div>
                    <div class="label">Fragments Extracted</div>
                </div>
                <div class="metric-item">
                    <div class="value">{{.Response.Statistics.PairsReported}}</div>
                    <div class="label">Clone Pairs</div>
                </div>
                <div class="metric-item">
                    <div class="value">{{len .Response.Groups}}</div>
                    <div class="label">Clone Groups</div>
                </div>
                <div class="metric-item">
                    <div class="value">{{.Response.Statistics.AverageSimilarity | pct}}</div>
                    <div class="label">Average Similarity</div>
                </div>
                <div class="metric-item">
                    <div class="value">{{.Response.Duration}}ms</div>
                    <div class="label">Duration</div>
                </div>
            </div>
        </div>

        <div class="details-section">
            <h2>Clone Pairs{{if .HiddenPairs}} (showing first {{len .Pairs}}, {{.HiddenPairs}} more in --format json/yaml){{end}}</h2>
            <table>
                <tr>
                    <th>Tier</th>
                    <th>Similarity</th>
                    <th>Priority</th>
                    <th>Fragment A</th>
                    <th>Fragment B</th>
                </tr>
                {{range .Pairs}}
                <tr>
                    <td><span class="tier-badge tier-{{.Tier}}">{{.Tier}}</span></td>
                    <td>{{.Similarity | pct}}</td>
                    <td>{{printf "%.1f" .Priority}}</td>
                    <td>{{.FragmentA.Location.FilePath}}:{{.FragmentA.Location.StartLine}}-{{.FragmentA.Location.EndLine}}</td>
                    <td>{{.FragmentB.Location.FilePath}}:{{.FragmentB.Location.StartLine}}-{{.FragmentB.Location.EndLine}}</td>
                </tr>
                {{end}}
            </table>
        </div>

        <div class="footer">
            Generated by <strong>cloneradar</strong>
        </div>
    </div>
</body>
</html>`
