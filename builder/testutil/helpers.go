package testutil

import (
	"fmt"
	"time"
)

// FixedNow is the clock used by publish tests
var FixedNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

// PostContent returns a draft with a frontmatter block titled title
func PostContent(title string) string {
	return fmt.Sprintf(`---
title: "%s"
date: "%s"
description: "Enter a short description here..."
tags: []
---

## Introduction

Start writing here...
`, title, FixedNow.Format("2006-01-02"))
}
