package partials

import (
	"context"
	"io"

	"autocare_portal_go/services"
	"autocare_portal_go/services/i18n"
	"autocare_portal_go/templates/components"

	"github.com/a-h/templ"
)

// ChatPanel is the assistant box on the customer dashboard. Answers are appended by htmx.
func ChatPanel() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Raw(`<section class="mt-8 rounded-xl border border-slate-200 bg-white p-6" id="chat"><h2 class="mb-4 font-semibold">`)
		m.Text(i18n.T(ctx, "chat.title"))
		m.Raw(`</h2><div id="chat-answers" class="space-y-3"></div>`)
		m.Raw(`<form class="mt-4 flex gap-2" hx-post="/customer/chat" hx-target="#chat-answers" hx-swap="beforeend" hx-on::after-request="this.reset()">`)
		m.Render(ctx, components.CSRFInput())
		m.Raw(`<input name="question" maxlength="500" required class="flex-1 rounded-lg border border-slate-300 px-3 py-2 text-sm"`)
		m.Attr("placeholder", i18n.T(ctx, "chat.placeholder"))
		m.Raw(`><button type="submit" class="rounded-lg bg-indigo-600 px-4 py-2 text-sm font-medium text-white">`)
		m.Text(i18n.T(ctx, "chat.send"))
		m.Raw(`</button></form></section>`)
		return m.Err()
	})
}

// ChatAnswer is one question/answer exchange
func ChatAnswer(question string, reply *services.ChatReply) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Raw(`<div class="chat-exchange"><p class="text-sm font-medium text-slate-900">`)
		m.Text(question)
		m.Raw(`</p><p class="mt-1 whitespace-pre-line text-sm text-slate-700">`)
		m.Text(reply.Answer)
		m.Raw(`</p>`)
		if len(reply.Links) > 0 {
			m.Raw(`<ul class="mt-1 flex gap-3 text-xs">`)
			for _, link := range reply.Links {
				m.Raw(`<li><a class="text-indigo-600 underline"`)
				m.Attr("href", link)
				m.Raw(`>`)
				m.Text(link)
				m.Raw(`</a></li>`)
			}
			m.Raw(`</ul>`)
		}
		m.Raw(`</div>`)
		return m.Err()
	})
}

// ChatError replaces an answer when the assistant could not respond
func ChatError(message string) templ.Component {
	return components.Alert("error", message)
}
