package html

// MatrixReportTemplate renders the species x plot matrix as a standalone HTML page
const MatrixReportTemplate = `<!DOCTYPE html>
<html lang="zh">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - {{.Source}}</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, 'PingFang SC', 'Microsoft YaHei', sans-serif;
            background: #f5f7fa;
            color: #2c3e50;
            line-height: 1.6;
        }

        .container {
            max-width: 1400px;
            margin: 0 auto;
            padding: 20px;
        }

        header {
            background: linear-gradient(135deg, #43a047 0%, #1b5e20 100%);
            color: white;
            padding: 30px 20px;
            margin-bottom: 30px;
            border-radius: 8px;
            box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);
        }

        header h1 {
            font-size: 2em;
            margin-bottom: 10px;
        }

        header p {
            opacity: 0.9;
        }

        .summary {
            background: white;
            padding: 20px;
            border-radius: 8px;
            margin-bottom: 30px;
            box-shadow: 0 2px 4px rgba(0, 0, 0, 0.05);
        }

        .stats {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(180px, 1fr));
            gap: 15px;
        }

        .stat-card {
            background: #f8f9fa;
            padding: 15px;
            border-radius: 6px;
            border-left: 4px solid #43a047;
        }

        .stat-card .label {
            font-size: 0.9em;
            color: #6c757d;
            margin-bottom: 5px;
        }

        .stat-card .value {
            font-size: 1.8em;
            font-weight: bold;
        }

        .matrix {
            background: white;
            border-radius: 8px;
            overflow: auto;
            max-height: 80vh;
            box-shadow: 0 2px 4px rgba(0, 0, 0, 0.05);
        }

        table {
            border-collapse: collapse;
            font-size: 0.9em;
        }

        th {
            background: #f8f9fa;
            padding: 8px 12px;
            font-weight: 600;
            color: #495057;
            border-bottom: 2px solid #dee2e6;
            position: sticky;
            top: 0;
            white-space: nowrap;
        }

        th.species, td.species {
            position: sticky;
            left: 0;
            background: #f8f9fa;
            text-align: left;
            font-weight: 600;
            white-space: nowrap;
        }

        th.species {
            z-index: 2;
        }

        td {
            padding: 6px 12px;
            border-bottom: 1px solid #e9ecef;
            text-align: right;
            font-variant-numeric: tabular-nums;
        }

        td.zero {
            color: #bdbdbd;
        }

        tr:hover td {
            background: #f1f8e9;
        }

        footer {
            text-align: center;
            padding: 30px 20px;
            color: #6c757d;
            font-size: 0.9em;
        }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>{{.Title}}</h1>
            <p>{{.Source}}{{if .Date}} · {{.Date}}{{end}}</p>
        </header>

        <section class="summary">
            <div class="stats">
                <div class="stat-card"><div class="label">Species</div><div class="value">{{.Species}}</div></div>
                <div class="stat-card"><div class="label">Plots</div><div class="value">{{.Plots}}</div></div>
                <div class="stat-card"><div class="label">Records</div><div class="value">{{.Records}}</div></div>
                <div class="stat-card"><div class="label">Layout</div><div class="value">{{.Layout}}</div></div>
            </div>
        </section>

        <section class="matrix">
            <table>
                <thead>
                    <tr>{{range $i, $h := .Header}}<th{{if eq $i 0}} class="species"{{end}}>{{$h}}</th>{{end}}</tr>
                </thead>
                <tbody>
                {{- range .Rows}}
                    <tr><td class="species">{{.Species}}</td>{{range .Cells}}<td{{if .Zero}} class="zero"{{end}}>{{.Text}}</td>{{end}}</tr>
                {{- end}}
                </tbody>
            </table>
        </section>

        <footer>Generated by species-matrix</footer>
    </div>
</body>
</html>
`
