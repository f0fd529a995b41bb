// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"fmt"
	"strings"
)

func lenBase10(n int) int { return len(fmt.Sprintf("%d", n)) }
func padBase10(n interface{}, m int) string {
	s := fmt.Sprintf("%d", n)
	if pad := m - len(s); pad > 0 {
		s = strings.Repeat(" ", pad) + s
	}
	return s
}

// FormatCode renders the bits of c as a string of '0' and '1' characters.
func FormatCode(c PrefixCode) string {
	if c.Len == 0 {
		return ""
	}
	return fmt.Sprintf(fmt.Sprintf("%%0%db", c.Len), c.Val)
}

func padCode(c PrefixCode, m int) string {
	s := FormatCode(c)
	if pad := m - len(s); pad > 0 {
		s = strings.Repeat(" ", pad) + s
	}
	return s
}

func (pc PrefixCodes) String() string {
	var maxSym, maxLen, maxCnt int
	for _, c := range pc {
		if maxSym < int(c.Sym) {
			maxSym = int(c.Sym)
		}
		if maxLen < int(c.Len) {
			maxLen = int(c.Len)
		}
		if maxCnt < c.Cnt {
			maxCnt = c.Cnt
		}
	}
	maxSymStr := lenBase10(maxSym)
	maxCntStr := lenBase10(maxCnt)

	var ss []string
	ss = append(ss, "{")
	for _, c := range pc {
		var cntStr string
		if maxCnt > 0 {
			cnt := int(32*float32(c.Cnt)/float32(maxCnt) + 0.5)
			cntStr = fmt.Sprintf("%s |%s",
				padBase10(c.Cnt, maxCntStr),
				strings.Repeat("#", cnt),
			)
		}
		ss = append(ss, fmt.Sprintf("\t%s:  %s,  %s",
			padBase10(c.Sym, maxSymStr),
			padCode(c, maxLen),
			cntStr,
		))
	}
	ss = append(ss, "}")
	return strings.Join(ss, "\n")
}

func (t Tree) String() string {
	var ss []string
	ss = append(ss, "{")
	idxStr := lenBase10(len(t.Nodes))
	for i, nd := range t.Nodes {
		mark := " "
		if int32(i) == t.Root {
			mark = "*"
		}
		if nd.IsLeaf() {
			ss = append(ss, fmt.Sprintf("\t%s%s:  {sym: %s, weight: %d},",
				mark, padBase10(i, idxStr), padBase10(nd.Sym, 3), nd.Weight))
		} else {
			ss = append(ss, fmt.Sprintf("\t%s%s:  {left: %s, right: %s, weight: %d},",
				mark, padBase10(i, idxStr), padBase10(nd.Left, idxStr),
				padBase10(nd.Right, idxStr), nd.Weight))
		}
	}
	ss = append(ss, "}")
	return strings.Join(ss, "\n")
}
