package editorcore

func (c *CommandExecutor) executeView(cmd ViewCommand) (CommandResult, CommandError) {
	switch v := cmd.(type) {
	case CommandSetViewportWidth:
		if v.Width <= 0 {
			return CommandResult{}, newOtherError("viewport width must be positive")
		}
		c.layout.SetViewportWidth(v.Width)
		return successResult(), nil

	case CommandSetTabWidth:
		if v.Width <= 0 {
			return CommandResult{}, newOtherError("tab width must be positive")
		}
		c.layout.SetTabWidth(v.Width)
		return successResult(), nil

	case CommandSetWrapMode:
		c.layout.SetWrapMode(v.Mode)
		return successResult(), nil

	case CommandSetWrapIndent:
		c.layout.SetWrapIndent(v.Indent)
		return successResult(), nil

	case CommandSetTabKeyBehavior:
		c.tabKeyBehavior = v.Behavior
		return successResult(), nil

	case CommandScrollTo:
		if v.Line < 0 || v.Line >= c.lineIndex.LineCount() {
			return CommandResult{}, InvalidPositionError{Line: v.Line}
		}
		return successResult(), nil

	case CommandGetViewport:
		grid := GenerateHeadlessGrid(c.lineIndex, c.layout, c.folding, c.styles, c.layout.TabWidth(), v.StartRow, v.Count)
		return CommandResult{Kind: ResultViewport, Viewport: grid}, nil

	default:
		return CommandResult{}, newOtherError("unknown view command")
	}
}

func (c *CommandExecutor) executeStyle(cmd StyleCommand) (CommandResult, CommandError) {
	switch s := cmd.(type) {
	case CommandAddStyle:
		if s.Start >= s.End {
			return CommandResult{}, InvalidRangeError{Start: s.Start, End: s.End}
		}
		c.styles.Base().Insert(NewInterval(s.Start, s.End, s.StyleID))
		return successResult(), nil

	case CommandRemoveStyle:
		c.styles.Base().Remove(s.Start, s.End, s.StyleID)
		return successResult(), nil

	case CommandFold:
		if s.StartLine < 0 || s.EndLine <= s.StartLine || s.EndLine >= c.lineIndex.LineCount() {
			return CommandResult{}, InvalidLineRangeError{StartLine: s.StartLine, EndLine: s.EndLine}
		}
		region := NewFoldRegion(s.StartLine, s.EndLine)
		region.Collapse()
		c.folding.AddRegion(region)
		return successResult(), nil

	case CommandUnfold:
		region, ok := c.folding.GetRegionForLine(s.StartLine)
		if !ok || region.StartLine != s.StartLine {
			return CommandResult{}, newOtherError("no fold region starting at line %d", s.StartLine)
		}
		c.folding.ExpandLine(s.StartLine)
		return successResult(), nil

	case CommandUnfoldAll:
		c.folding.ExpandAll()
		return successResult(), nil

	default:
		return CommandResult{}, newOtherError("unknown style command")
	}
}
