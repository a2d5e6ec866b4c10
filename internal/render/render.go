// Package render writes the curated digest as a standalone HTML page in
// the gAIzette newspaper layout.
package render

import (
	"fmt"
	"html/template"
	"os"
	"time"

	"gaizette/internal/curator"
)

// Digest is everything the template needs for one page.
type Digest struct {
	GeneratedAt time.Time
	Topics      []string
	Result      curator.CurationResult
}

var funcs = template.FuncMap{
	"snippet": func(s string) string {
		runes := []rune(s)
		if len(runes) <= 300 {
			return s
		}
		return string(runes[:300]) + "..."
	},
	"date": func(t time.Time) string {
		return t.Format("Jan 2, 2006 15:04")
	},
}

// WriteHTML renders the digest to path, replacing any previous file.
func WriteHTML(path string, d Digest) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := digestTmpl.Execute(f, d); err != nil {
		return fmt.Errorf("render digest: %w", err)
	}
	return nil
}

var digestTmpl = template.Must(template.New("digest").Funcs(funcs).Parse(digestHTML))

const digestHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>gAIzette</title>
    <style>
        body {
            font-family: 'Georgia', serif;
            background-color: #f4f4f4;
            color: #333;
            margin: 0;
            padding: 20px;
        }
        header {
            text-align: center;
            margin-bottom: 20px;
            border-bottom: 2px solid #000;
            padding-bottom: 10px;
        }
        header h1 {
            font-size: 3em;
            margin: 0;
            font-weight: bold;
            letter-spacing: 2px;
        }
        .topics {
            font-size: 0.8em;
            color: #666;
            margin-top: 10px;
        }
        .topics details {
            display: inline-block;
        }
        .topics summary {
            cursor: pointer;
            font-style: italic;
        }
        .topics ul {
            list-style-type: none;
            padding: 0;
            margin: 5px 0 0 0;
        }
        .topics li {
            margin-bottom: 5px;
        }
        .featured {
            max-width: 1200px;
            margin: 0 auto 30px auto;
            border-bottom: 2px solid #000;
            padding-bottom: 20px;
        }
        .featured h2.band {
            font-size: 1em;
            letter-spacing: 3px;
            text-transform: uppercase;
            border-bottom: 1px solid #ccc;
            padding-bottom: 5px;
        }
        .featured .story {
            margin-bottom: 25px;
        }
        .featured .story img {
            max-width: 100%;
            height: auto;
            margin-bottom: 10px;
        }
        .featured .story h2 {
            font-size: 1.8em;
            margin: 0 0 5px;
            line-height: 1.2;
        }
        .container {
            max-width: 1200px;
            margin: 0 auto;
            column-count: 3;
            column-gap: 40px;
            column-rule: 1px solid #ccc;
        }
        .article {
            break-inside: avoid-column;
            margin-bottom: 30px;
        }
        .article h2 {
            font-size: 1.4em;
            margin: 0 0 5px;
            line-height: 1.2;
            font-weight: bold;
        }
        .article h2 a, .featured .story h2 a {
            color: #000;
            text-decoration: none;
        }
        .article h2 a:hover, .featured .story h2 a:hover {
            text-decoration: underline;
        }
        .date {
            font-size: 0.8em;
            color: #666;
            margin-bottom: 10px;
            font-style: italic;
        }
        .source {
            font-size: 0.75em;
            color: #999;
            text-transform: uppercase;
            letter-spacing: 1px;
        }
        .article p, .featured .story p {
            font-size: 1em;
            line-height: 1.5;
            margin: 0;
        }
        .article hr {
            border: none;
            border-top: 1px solid #ccc;
            margin: 20px 0 0 0;
        }
        footer {
            max-width: 1200px;
            margin: 30px auto 0 auto;
            border-top: 2px solid #000;
            padding-top: 10px;
            font-size: 0.8em;
            color: #666;
            text-align: center;
            font-style: italic;
        }
        @media (max-width: 768px) {
            .container {
                column-count: 1;
            }
        }
    </style>
</head>
<body>
    <header>
        <h1>gAIzette</h1>
        <div class="topics">
            <details>
                <summary>Topics Followed</summary>
                <ul>
{{- range .Topics}}
                    <li>{{.}}</li>
{{- end}}
                </ul>
            </details>
        </div>
    </header>
{{- if .Result.Featured}}
    <div class="featured">
        <h2 class="band">Featured Stories</h2>
{{- range .Result.Featured}}
        <div class="story">
{{- if .ImageURL}}
            <img src="{{.ImageURL}}" alt="{{.Title}}">
{{- end}}
            <h2><a href="{{.Link}}">{{.Title}}</a></h2>
            <div class="date">{{date .PublishedAt}}{{if .SourceName}} <span class="source">{{.SourceName}}</span>{{end}}</div>
            <p>{{snippet .Summary}}</p>
        </div>
{{- end}}
    </div>
{{- end}}
    <div class="container">
{{- range .Result.Regular}}
        <div class="article">
            <h2><a href="{{.Link}}">{{.Title}}</a></h2>
            <div class="date">{{date .PublishedAt}}{{if .SourceName}} <span class="source">{{.SourceName}}</span>{{end}}</div>
            <p>{{snippet .Summary}}</p>
            <hr>
        </div>
{{- end}}
    </div>
    <footer>
        Generated {{date .GeneratedAt}} &mdash; {{.Result.Accepted}} of {{.Result.TotalAnalyzed}} analyzed articles made the cut.
    </footer>
</body>
</html>
`
