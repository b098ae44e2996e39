package web

import (
	"fmt"
	"html"
	"io"

	"github.com/ThisisBizness/Study-Buddy/pkg/chat"
	"github.com/ThisisBizness/Study-Buddy/pkg/domain"
	"github.com/ThisisBizness/Study-Buddy/pkg/markdown"
)

const pageHeader = `<!DOCTYPE html>
<html>
<head>
    <title>Study Buddy</title>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { margin: 2.5rem; font-family: system-ui, -apple-system, sans-serif; background: #FFF8F0; color: #2C1F3D; }
        .chat { max-width: 700px; margin: 1.25rem auto; }
        .q { padding: 1rem 1.25rem; background: #E8DCC4; font-style: italic; border-left: 4px solid #6B4C8A; margin: 1rem 0; }
        .a { padding: 1.25rem; background: #FFFBF5; border: 1px solid #E8DCC4; border-radius: 8px; margin: 1rem 0; }
        .a .section { margin-bottom: 1rem; }
        .a .section h3 { margin: 0 0 .5rem 0; color: #6B4C8A; font-size: 1rem; }
        .a pre { background: #2C1F3D; color: #FFF8F0; padding: .75rem 1rem; border-radius: 6px; overflow-x: auto; }
        .a code { font-family: ui-monospace, monospace; }
        .notice { max-width: 700px; margin: 1rem auto; padding: .75rem 1.25rem; background: #F8D7DA; color: #721C24; border-radius: 6px; }
        .attachment { font-size: .85rem; color: #6B4C8A; }
        form { max-width: 700px; margin: 1rem auto 3rem; }
        textarea { width: 100%; box-sizing: border-box; padding: .75rem 1rem; font-size: 1rem; border: 2px solid #6B4C8A; border-radius: 10px; background: #FFFBF5; }
        .controls { display: flex; gap: .5rem; margin-top: .5rem; align-items: center; }
        input[type="submit"] { padding: .6rem 2rem; font-weight: 600; background: #6B4C8A; color: white; border: none; border-radius: 8px; cursor: pointer; }
        input[type="submit"]:disabled { opacity: .5; cursor: wait; }
    </style>
</head>
<body>
    <h1>Study Buddy</h1>
    <p>Send a STEM problem as text, a photo, or both.</p>
    <div class="chat">`

const pageFooter = `</div>
    <form method="post" action="/chat" enctype="multipart/form-data">
        <textarea name="text" rows="3" placeholder="Type your problem..." autofocus></textarea>
        <div class="controls">
            <input type="file" name="image" accept="image/*">
            <input type="submit" value="Solve"%s>
        </div>
    </form>
</body>
</html>`

var sectionTitles = map[string]string{
	domain.SectionSolution:          "Solution",
	domain.SectionExplanation:       "Explanation",
	domain.SectionPracticeQuestions: "Practice Questions",
	domain.SectionResponse:          "Response",
}

// WritePage renders the whole chat page: transcript bubbles, the current
// notification if any, and the submit form. All user and model text passes
// through the markdown renderer or is HTML-escaped directly.
func WritePage(w io.Writer, session *chat.Session, renderer markdown.Renderer) {
	io.WriteString(w, pageHeader)

	for _, msg := range session.Messages() {
		switch msg.Role {
		case domain.MessageRoleUser:
			fmt.Fprint(w, `<div class="q">`)
			if msg.Text != "" {
				fmt.Fprint(w, html.EscapeString(msg.Text))
			}
			if msg.ImageRef != "" {
				fmt.Fprintf(w, ` <span class="attachment">[image: %s]</span>`, html.EscapeString(msg.ImageRef))
			}
			fmt.Fprint(w, "</div>\n")
		case domain.MessageRoleAssistant:
			fmt.Fprint(w, `<div class="a">`)
			for _, section := range msg.Sections {
				title := sectionTitles[section.Name]
				if title == "" {
					title = section.Name
				}
				fmt.Fprintf(w, `<div class="section %s"><h3>%s</h3>%s</div>`,
					html.EscapeString(section.Name),
					html.EscapeString(title),
					renderer.Render(section.Markdown))
			}
			if msg.ImageRef != "" {
				fmt.Fprintf(w, `<img src="%s" alt="answer image">`, html.EscapeString(msg.ImageRef))
			}
			if len(msg.Sections) == 0 && msg.ImageRef == "" {
				fmt.Fprint(w, "<p>(empty answer)</p>")
			}
			fmt.Fprint(w, "</div>\n")
		}
	}

	if notice := session.Notice(); notice != "" {
		fmt.Fprintf(w, `<div class="notice">%s</div>`+"\n", html.EscapeString(notice))
	}

	disabled := ""
	if session.State() == chat.StateSubmitting {
		disabled = " disabled"
	}
	fmt.Fprintf(w, pageFooter, disabled)
}
