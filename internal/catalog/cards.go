package catalog

import "strconv"

// ExtractContinuePoint resolves the "resume here" pointer from a free-form
// progress map (season number -> last watched episode). Keys and values may
// arrive as numbers or numeric strings depending on how the progress JSON was
// written; non-coercible entries are skipped silently. The entry with the
// numerically largest season wins. Returns nil when nothing usable remains.
func ExtractContinuePoint(progress map[string]any) *ContinuePoint {
	if len(progress) == 0 {
		return nil
	}

	var cp *ContinuePoint
	for k, v := range progress {
		season, ok := coerceInt(k)
		if !ok || season < 1 {
			continue
		}
		episode, ok := coerceInt(v)
		if !ok || episode < 1 {
			continue
		}
		if cp == nil || season > cp.Season {
			cp = &ContinuePoint{Season: season, Episode: episode}
		}
	}
	return cp
}

func coerceInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// SelectBadge picks at most one badge for a card. The rules form an ordered
// cascade: the first match wins and masks everything below it. User-specific
// continuation signals outrank list merchandising, and HIT (an evidence-backed
// quality claim) outranks recency/trend signals.
func SelectBadge(sig CardSignals, listCtx ListContext) *BadgeKey {
	if sig.UserState == WatchStateWatching && sig.HasNewEpisode {
		return badge(BadgeNewEpisode)
	}
	if sig.ContinuePoint != nil {
		return badge(BadgeContinue)
	}
	// The continue list shows continuation badges only.
	if listCtx == ContextContinueList {
		return nil
	}
	if listCtx != ContextUserLibrary && sig.UserState == WatchStatePlanned {
		return badge(BadgeInWatchlist)
	}
	if sig.IsHit {
		return badge(BadgeHit)
	}

	switch listCtx {
	case ContextTrendingList:
		return badge(BadgeTrending)
	case ContextNewReleases:
		if sig.IsNewRelease {
			return badge(BadgeNewRelease)
		}
		return nil
	case ContextInTheaters:
		return badge(BadgeInTheaters)
	case ContextNewOnStreaming:
		return badge(BadgeNewOnStreaming)
	case ContextDefault:
		if sig.IsNewRelease {
			return badge(BadgeNewRelease)
		}
		if sig.TrendDelta == TrendUp {
			return badge(BadgeRising)
		}
		if sig.IsTrending {
			return badge(BadgeTrending)
		}
		return nil
	}
	return nil
}

func badge(b BadgeKey) *BadgeKey { return &b }

// SelectPrimaryCta maps the selected badge and saved-state presence to the
// one suggested action.
func SelectPrimaryCta(b *BadgeKey, hasUserEntry bool) PrimaryCta {
	if b != nil && (*b == BadgeNewEpisode || *b == BadgeContinue) {
		return CtaContinue
	}
	if !hasUserEntry {
		return CtaSave
	}
	return CtaOpen
}

// BuildCard composes badge, CTA and continue point into the final card
// classification. A planned item has not been started, so its continue
// pointer is dropped here even when one was computed upstream.
func BuildCard(sig CardSignals, listCtx ListContext) CardMeta {
	b := SelectBadge(sig, listCtx)
	card := CardMeta{
		BadgeKey:    b,
		PrimaryCta:  SelectPrimaryCta(b, sig.HasUserEntry),
		Continue:    sig.ContinuePoint,
		ListContext: listCtx,
	}
	if sig.UserState == WatchStatePlanned {
		card.Continue = nil
	}
	return card
}
