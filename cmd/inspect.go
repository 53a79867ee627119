package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sqlcheck/sqlcheck/catalog"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Browse the resolved schema interactively",
	Long:  `inspect opens a terminal UI listing every table; press enter to see its columns, esc to go back, q to quit.`,
	RunE:  runInspect,
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	typeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func runInspect(cmd *cobra.Command, args []string) error {
	schema, _, err := loadSchema()
	if err != nil {
		return err
	}
	program := tea.NewProgram(newInspectModel(schema))
	_, err = program.Run()
	return err
}

type tableItem struct {
	table *catalog.Table
}

func (i tableItem) Title() string { return i.table.Name }
func (i tableItem) Description() string {
	return fmt.Sprintf("%d columns", len(i.table.Columns))
}
func (i tableItem) FilterValue() string { return i.table.Name }

type columnItem struct {
	col catalog.Column
}

func (i columnItem) Title() string { return i.col.Name }
func (i columnItem) Description() string {
	nullability := "not null"
	if i.col.Nullable {
		nullability = "nullable"
	}
	return fmt.Sprintf("%s, %s", typeStyle.Render(i.col.Type.String()), nullability)
}
func (i columnItem) FilterValue() string { return i.col.Name }

// inspectModel drills from a list of tables into a list of columns. It
// keeps one list.Model per level and a flag for which one is shown,
// rather than a navigation stack, since the schema browser never nests
// more than one level deep.
type inspectModel struct {
	schema      *catalog.Schema
	tableList   list.Model
	columnList  list.Model
	viewingCols bool
}

func newInspectModel(schema *catalog.Schema) inspectModel {
	items := make([]list.Item, 0, len(schema.TableNames()))
	for _, name := range schema.TableNames() {
		table, _ := schema.Table(name)
		items = append(items, tableItem{table: table})
	}
	tableList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	tableList.Title = "tables"
	tableList.Styles.Title = titleStyle

	return inspectModel{
		schema:    schema,
		tableList: tableList,
	}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := msg.Width, msg.Height-2
		m.tableList.SetSize(h, v)
		m.columnList.SetSize(h, v)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.viewingCols {
				m.viewingCols = false
				return m, nil
			}
		case "enter":
			if !m.viewingCols {
				if selected, ok := m.tableList.SelectedItem().(tableItem); ok {
					m.columnList = newColumnList(selected.table)
					m.columnList.SetSize(m.tableList.Width(), m.tableList.Height())
					m.viewingCols = true
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.viewingCols {
		m.columnList, cmd = m.columnList.Update(msg)
	} else {
		m.tableList, cmd = m.tableList.Update(msg)
	}
	return m, cmd
}

func newColumnList(table *catalog.Table) list.Model {
	items := make([]list.Item, len(table.Columns))
	for i, col := range table.Columns {
		items[i] = columnItem{col: col}
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = table.Name
	l.Styles.Title = titleStyle
	return l
}

func (m inspectModel) View() string {
	if m.viewingCols {
		return m.columnList.View()
	}
	return m.tableList.View()
}
