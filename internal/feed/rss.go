package feed

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/goliatone/go-blogkit/internal/util"
)

const defaultStylesheetHref = "/rss/styles.xsl"

// EncodeRSS renders feed as an RSS 2.0 document. Item links are resolved
// against site.BaseURL, item dates are formatted as RFC1123Z when they parse
// and emitted as written otherwise.
func EncodeRSS(feed Feed, site Site, generatedAt time.Time) string {
	baseLink := baseURLWithFallback(site.BaseURL)

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	if feed.Stylesheet {
		href := util.FirstNonEmpty(site.StylesheetHref, defaultStylesheetHref)
		builder.WriteString(fmt.Sprintf(`<?xml-stylesheet href="%s" type="text/xsl"?>`+"\n", escapeXMLAttr(href)))
	}
	builder.WriteString(`<rss version="2.0">` + "\n")
	builder.WriteString("  <channel>\n")
	builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(feed.Title)))
	builder.WriteString(fmt.Sprintf("    <link>%s</link>\n", escapeXML(baseLink)))
	builder.WriteString(fmt.Sprintf("    <description>%s</description>\n", escapeXML(feed.Description)))
	builder.WriteString(fmt.Sprintf("    <lastBuildDate>%s</lastBuildDate>\n", generatedAt.UTC().Format(time.RFC1123Z)))
	if feed.CustomData != "" {
		builder.WriteString("    " + feed.CustomData + "\n")
	}
	for _, item := range feed.Items {
		link := absoluteURL(site.BaseURL, item.Link)
		builder.WriteString("    <item>\n")
		builder.WriteString(fmt.Sprintf("      <title>%s</title>\n", escapeXML(item.Title)))
		builder.WriteString(fmt.Sprintf("      <link>%s</link>\n", escapeXML(link)))
		builder.WriteString(fmt.Sprintf("      <guid>%s</guid>\n", escapeXML(link)))
		if pub := formatPubDate(item.PubDate); pub != "" {
			builder.WriteString(fmt.Sprintf("      <pubDate>%s</pubDate>\n", escapeXML(pub)))
		}
		if item.Description != "" {
			builder.WriteString(fmt.Sprintf("      <description>%s</description>\n", escapeXML(item.Description)))
		}
		builder.WriteString("    </item>\n")
	}
	builder.WriteString("  </channel>\n")
	builder.WriteString(`</rss>` + "\n")
	return builder.String()
}

func formatPubDate(date string) string {
	trimmed := strings.TrimSpace(date)
	if trimmed == "" {
		return ""
	}
	parsed, err := dateparse.ParseIn(trimmed, time.UTC)
	if err != nil {
		return trimmed
	}
	return parsed.UTC().Format(time.RFC1123Z)
}

func baseURLWithFallback(base string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(base), "/")
	if trimmed == "" {
		return "http://localhost"
	}
	return trimmed
}

func absoluteURL(base, route string) string {
	targetBase := baseURLWithFallback(base)
	normalized := strings.TrimSpace(route)
	if normalized == "" {
		return targetBase
	}
	if strings.Contains(normalized, "://") {
		return normalized
	}
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	return targetBase + normalized
}

func escapeXML(value string) string {
	return html.EscapeString(value)
}

func escapeXMLAttr(value string) string {
	return html.EscapeString(value)
}
