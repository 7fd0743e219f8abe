package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	newStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	trkStyle    = lipgloss.NewStyle().Faint(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	defectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	headerStyle = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

func NewLine(w io.Writer, path string) {
	fmt.Fprintln(w, newStyle.Render("new")+"  "+path)
}

func TrkLine(w io.Writer, path string) {
	fmt.Fprintln(w, trkStyle.Render("trk")+"  "+path)
}

func ErrLine(w io.Writer, path string, err error) {
	fmt.Fprintln(w, errStyle.Render("err")+"  "+path+": "+err.Error())
}

func DefectLine(w io.Writer, detail string) {
	fmt.Fprintln(w, "  "+defectStyle.Render("warn")+"  "+detail)
}

func OkLine(w io.Writer, path string) {
	fmt.Fprintln(w, okStyle.Render("ok")+"   "+path)
}

func SummaryLine(w io.Writer, count int) {
	fmt.Fprintf(w, "synced %d files\n", count)
}

func CheckSummary(w io.Writer, files, defects int) {
	if defects == 0 {
		fmt.Fprintf(w, "checked %d files, no defects\n", files)
		return
	}
	fmt.Fprintf(w, "checked %d files, %d defects\n", files, defects)
}

func ListRow(w io.Writer, id int64, path, title, language string, scenarios, defects int, pathWidth, titleWidth int) {
	tag := fmt.Sprintf("#%d", id)
	status := okStyle.Render("clean")
	if defects > 0 {
		status = defectStyle.Render(fmt.Sprintf("%d defects", defects))
	}
	// pad before styling so ANSI codes don't skew the columns
	fmt.Fprintf(w, "%s %-*s %-*s %s  %d scenarios  %s\n",
		faintStyle.Render(fmt.Sprintf("%-5s", tag)), pathWidth, path, titleWidth, title, language, scenarios, status)
}

func ShowHeader(w io.Writer, id int64, path string) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("#%d", id))+"  "+path)
}

func ShowGherkin(w io.Writer, content string) {
	fmt.Fprintln(w, content)
}
