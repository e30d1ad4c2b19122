package registryconsole

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	domainregistry "participantes/internal/domain/registry"
	"participantes/internal/usecase/registry"
)

const maxListRows = 15

type mode int

const (
	modeList mode = iota
	modeFilter
	modeForm
	modePickDivision
	modePickLocality
	modeConfirmOverwrite
	modeConfirmDelete
)

// Form field order matches the printed entry sheet the registry staff
// works from.
const (
	fieldID = iota
	fieldName
	fieldAddress
	fieldPhone
	fieldAffiliation
	fieldDate
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Identificación",
	"Nombre",
	"Dirección",
	"Celular",
	"Entidad",
	"Fecha (dd/mm/aaaa)",
}

type Options struct {
	Now func() time.Time
}

type consoleModel struct {
	ctx     context.Context
	service *registry.Service
	now     func() time.Time

	mode          mode
	status        string
	filter        string
	filterDraft   string
	items         []registry.ParticipantItem
	selectedIndex int

	fields          [fieldCount]string
	fieldIndex      int
	division        string
	locality        string
	pendingSave     registry.SaveParticipantInput
	pendingDeleteID string

	divisions      []string
	localities     []string
	pickerIndex    int
	pickerDivision string
}

type participantsLoadedMsg struct {
	items []registry.ParticipantItem
	err   error
}

type divisionsLoadedMsg struct {
	divisions []string
	err       error
}

type localitiesLoadedMsg struct {
	division   string
	localities []string
	err        error
}

type saveDoneMsg struct {
	input   registry.SaveParticipantInput
	outcome registry.SaveParticipantOutcome
	err     error
}

type deleteDoneMsg struct {
	result registry.DeleteParticipantsResult
	err    error
}

func NewConsoleModel(ctx context.Context, service *registry.Service, options Options) tea.Model {
	now := options.Now
	if now == nil {
		now = time.Now
	}
	return &consoleModel{
		ctx:     ctx,
		service: service,
		now:     now,
		status:  "cargando participantes",
	}
}

func (m *consoleModel) Init() tea.Cmd {
	return m.loadParticipantsCmd()
}

func (m *consoleModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := message.(type) {
	case participantsLoadedMsg:
		if msg.err != nil {
			m.status = "error al listar: " + msg.err.Error()
			return m, nil
		}
		m.items = msg.items
		m.selectedIndex = clampIndex(m.selectedIndex, len(m.items))
		m.status = fmt.Sprintf("%d participantes", len(m.items))
		return m, nil
	case divisionsLoadedMsg:
		if msg.err != nil {
			m.mode = modeForm
			m.status = "error al cargar departamentos: " + msg.err.Error()
			return m, nil
		}
		if len(msg.divisions) == 0 {
			m.mode = modeForm
			m.status = "no hay ciudades cargadas; ejecute `city import` primero"
			return m, nil
		}
		m.divisions = msg.divisions
		m.pickerIndex = 0
		m.mode = modePickDivision
		return m, nil
	case localitiesLoadedMsg:
		if msg.err != nil {
			m.mode = modeForm
			m.status = "error al cargar ciudades: " + msg.err.Error()
			return m, nil
		}
		m.localities = msg.localities
		m.pickerDivision = msg.division
		m.pickerIndex = 0
		m.mode = modePickLocality
		return m, nil
	case saveDoneMsg:
		if errors.Is(msg.err, registry.ErrParticipantExists) {
			m.pendingSave = msg.input
			m.mode = modeConfirmOverwrite
			m.status = "la identificación ya existe"
			return m, nil
		}
		if msg.err != nil {
			m.mode = modeForm
			m.status = "error al guardar: " + msg.err.Error()
			return m, nil
		}
		m.resetForm()
		m.mode = modeList
		if msg.outcome.Created {
			m.status = "participante " + msg.outcome.ID + " registrado"
		} else {
			m.status = "participante " + msg.outcome.ID + " actualizado"
		}
		return m, m.loadParticipantsCmd()
	case deleteDoneMsg:
		if msg.err != nil {
			m.status = "error al eliminar: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("eliminados %d de %d", msg.result.Deleted, msg.result.Requested)
		return m, m.loadParticipantsCmd()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *consoleModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeList:
		return m.handleListKey(msg)
	case modeFilter:
		return m.handleFilterKey(msg)
	case modeForm:
		return m.handleFormKey(msg)
	case modePickDivision, modePickLocality:
		return m.handlePickerKey(msg)
	case modeConfirmOverwrite:
		return m.handleConfirmKey(msg)
	case modeConfirmDelete:
		return m.handleConfirmDeleteKey(msg)
	}
	return m, nil
}

func (m *consoleModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
		return m, nil
	case "down", "j":
		if m.selectedIndex < len(m.items)-1 {
			m.selectedIndex++
		}
		return m, nil
	case "g":
		m.status = "actualizando"
		return m, m.loadParticipantsCmd()
	case "/":
		m.filterDraft = m.filter
		m.mode = modeFilter
		return m, nil
	case "n":
		m.resetForm()
		m.mode = modeForm
		m.status = "nuevo participante"
		return m, nil
	case "e":
		selected, ok := m.selectedItem()
		if !ok {
			m.status = "no hay participante seleccionado"
			return m, nil
		}
		m.fillForm(selected)
		m.mode = modeForm
		m.status = "editando participante " + selected.ID
		return m, nil
	case "d":
		selected, ok := m.selectedItem()
		if !ok {
			m.status = "no hay participante seleccionado"
			return m, nil
		}
		m.pendingDeleteID = selected.ID
		m.mode = modeConfirmDelete
		m.status = "confirme la eliminación"
		return m, nil
	}
	return m, nil
}

func (m *consoleModel) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filter = strings.TrimSpace(m.filterDraft)
		m.mode = modeList
		m.selectedIndex = 0
		return m, m.loadParticipantsCmd()
	case "esc":
		m.mode = modeList
		return m, nil
	default:
		m.filterDraft = applyKeyToValue(m.filterDraft, msg)
		return m, nil
	}
}

func (m *consoleModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.status = "captura cancelada"
		return m, nil
	case "tab", "down":
		m.fieldIndex = (m.fieldIndex + 1) % fieldCount
		return m, nil
	case "shift+tab", "up":
		m.fieldIndex = (m.fieldIndex + fieldCount - 1) % fieldCount
		return m, nil
	case "enter":
		if err := validateForm(m.fields, m.now()); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = "seleccione el departamento"
		return m, m.loadDivisionsCmd()
	default:
		m.fields[m.fieldIndex] = applyKeyToValue(m.fields[m.fieldIndex], msg)
		return m, nil
	}
}

func (m *consoleModel) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	options := m.pickerOptions()
	switch msg.String() {
	case "esc":
		m.mode = modeForm
		return m, nil
	case "up", "k":
		if m.pickerIndex > 0 {
			m.pickerIndex--
		}
		return m, nil
	case "down", "j":
		if m.pickerIndex < len(options)-1 {
			m.pickerIndex++
		}
		return m, nil
	case "enter":
		if len(options) == 0 {
			return m, nil
		}
		choice := options[m.pickerIndex]
		if m.mode == modePickDivision {
			m.division = choice
			m.status = "seleccione la ciudad"
			return m, m.loadLocalitiesCmd(choice)
		}
		m.locality = choice
		input := buildSaveInput(m.fields, m.locality, false)
		m.status = "guardando"
		return m, m.saveCmd(input)
	}
	return m, nil
}

func (m *consoleModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s", "S", "y", "Y":
		input := m.pendingSave
		input.Overwrite = true
		m.status = "sobrescribiendo"
		return m, m.saveCmd(input)
	case "n", "N", "esc":
		m.mode = modeForm
		m.status = "captura conservada; cambie la identificación o cancele"
		return m, nil
	}
	return m, nil
}

func (m *consoleModel) handleConfirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s", "S", "y", "Y":
		id := m.pendingDeleteID
		m.pendingDeleteID = ""
		m.mode = modeList
		m.status = "eliminando " + id
		return m, m.deleteCmd(id)
	case "n", "N", "esc":
		m.pendingDeleteID = ""
		m.mode = modeList
		m.status = "eliminación cancelada"
		return m, nil
	}
	return m, nil
}

func (m *consoleModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("62"))

	var builder strings.Builder
	builder.WriteString(titleStyle.Render("Registro de Participantes"))
	builder.WriteString("\n")
	builder.WriteString(dimStyle.Render(fmt.Sprintf("filtro=%s registros=%d", valueOrDash(m.filter), len(m.items))))
	builder.WriteString("\n\n")

	switch m.mode {
	case modeForm, modeConfirmOverwrite:
		builder.WriteString(sectionStyle.Render("Captura"))
		builder.WriteString("\n")
		for index, label := range fieldLabels {
			line := fmt.Sprintf("%s: %s", label, m.fields[index])
			if m.mode == modeForm && index == m.fieldIndex {
				builder.WriteString(selectedStyle.Render("> " + line))
			} else {
				builder.WriteString("  " + line)
			}
			builder.WriteString("\n")
		}
		builder.WriteString(fmt.Sprintf("  Departamento: %s\n", valueOrDash(m.division)))
		builder.WriteString(fmt.Sprintf("  Ciudad: %s\n", valueOrDash(m.locality)))
		builder.WriteString("\n")
		if m.mode == modeConfirmOverwrite {
			builder.WriteString(sectionStyle.Render("Confirmación"))
			builder.WriteString("\n")
			builder.WriteString("La identificación ya está registrada. ¿Desea sobrescribirla? (s/n)\n\n")
		}
	case modePickDivision:
		builder.WriteString(sectionStyle.Render("Departamento"))
		builder.WriteString("\n")
		builder.WriteString(m.renderPicker(m.divisions, selectedStyle))
	case modePickLocality:
		builder.WriteString(sectionStyle.Render("Ciudad (" + m.pickerDivision + ")"))
		builder.WriteString("\n")
		builder.WriteString(m.renderPicker(m.localities, selectedStyle))
	case modeFilter:
		builder.WriteString(sectionStyle.Render("Filtro"))
		builder.WriteString("\n")
		builder.WriteString("> " + m.filterDraft)
		builder.WriteString("\n\n")
	default:
		builder.WriteString(sectionStyle.Render("Participantes"))
		builder.WriteString("\n")
		if len(m.items) == 0 {
			builder.WriteString(dimStyle.Render("- sin registros"))
			builder.WriteString("\n")
		} else {
			start, end := visibleWindow(m.selectedIndex, len(m.items), maxListRows)
			for index := start; index < end; index++ {
				item := m.items[index]
				line := fmt.Sprintf(
					"%s  %s  %s  %s / %s",
					item.ID,
					valueOrDash(item.Name),
					valueOrDash(item.Phone),
					valueOrDash(item.LocalityName),
					valueOrDash(item.DivisionName),
				)
				if index == m.selectedIndex {
					builder.WriteString(selectedStyle.Render("> " + line))
				} else {
					builder.WriteString("  " + line)
				}
				builder.WriteString("\n")
			}
		}
		builder.WriteString("\n")
		if m.mode == modeConfirmDelete {
			builder.WriteString(sectionStyle.Render("Confirmación"))
			builder.WriteString("\n")
			builder.WriteString(fmt.Sprintf("¿Está seguro de que desea eliminar el participante %s? (s/n)\n\n", m.pendingDeleteID))
		}
	}

	builder.WriteString(sectionStyle.Render("Estado"))
	builder.WriteString("\n")
	builder.WriteString("- " + valueOrDash(m.status))
	builder.WriteString("\n\n")
	builder.WriteString(dimStyle.Render(m.keyHelp()))
	return builder.String()
}

func (m *consoleModel) keyHelp() string {
	switch m.mode {
	case modeForm:
		return "Teclas: tab/↑/↓ campo  enter continuar  esc cancelar"
	case modePickDivision, modePickLocality:
		return "Teclas: ↑/↓ mover  enter elegir  esc volver"
	case modeConfirmOverwrite:
		return "Teclas: s sobrescribir  n conservar"
	case modeConfirmDelete:
		return "Teclas: s eliminar  n cancelar"
	case modeFilter:
		return "Teclas: enter aplicar  esc cancelar"
	default:
		return "Teclas: ↑/k ↓/j mover  n nuevo  e editar  d eliminar  / filtrar  g actualizar  q salir"
	}
}

func (m *consoleModel) renderPicker(options []string, selectedStyle lipgloss.Style) string {
	var builder strings.Builder
	start, end := visibleWindow(m.pickerIndex, len(options), maxListRows)
	for index := start; index < end; index++ {
		if index == m.pickerIndex {
			builder.WriteString(selectedStyle.Render("> " + options[index]))
		} else {
			builder.WriteString("  " + options[index])
		}
		builder.WriteString("\n")
	}
	builder.WriteString("\n")
	return builder.String()
}

func (m *consoleModel) pickerOptions() []string {
	if m.mode == modePickDivision {
		return m.divisions
	}
	return m.localities
}

func (m *consoleModel) selectedItem() (registry.ParticipantItem, bool) {
	if len(m.items) == 0 || m.selectedIndex < 0 || m.selectedIndex >= len(m.items) {
		return registry.ParticipantItem{}, false
	}
	return m.items[m.selectedIndex], true
}

func (m *consoleModel) resetForm() {
	m.fields = [fieldCount]string{}
	m.fieldIndex = 0
	m.division = ""
	m.locality = ""
	m.pendingSave = registry.SaveParticipantInput{}
}

func (m *consoleModel) fillForm(item registry.ParticipantItem) {
	m.fields[fieldID] = item.ID
	m.fields[fieldName] = item.Name
	m.fields[fieldAddress] = item.Address
	m.fields[fieldPhone] = item.Phone
	m.fields[fieldAffiliation] = item.Affiliation
	m.fields[fieldDate] = item.EventDate
	m.fieldIndex = 0
	m.division = item.DivisionName
	m.locality = item.LocalityName
}

func (m *consoleModel) loadParticipantsCmd() tea.Cmd {
	filter := m.filter
	return func() tea.Msg {
		items, err := m.service.ListParticipants(m.ctx, filter)
		return participantsLoadedMsg{items: items, err: err}
	}
}

func (m *consoleModel) loadDivisionsCmd() tea.Cmd {
	return func() tea.Msg {
		divisions, err := m.service.ListDivisions(m.ctx)
		return divisionsLoadedMsg{divisions: divisions, err: err}
	}
}

func (m *consoleModel) loadLocalitiesCmd(division string) tea.Cmd {
	return func() tea.Msg {
		localities, err := m.service.ListLocalities(m.ctx, division)
		return localitiesLoadedMsg{division: division, localities: localities, err: err}
	}
}

func (m *consoleModel) saveCmd(input registry.SaveParticipantInput) tea.Cmd {
	return func() tea.Msg {
		outcome, err := m.service.SaveParticipant(m.ctx, input)
		return saveDoneMsg{input: input, outcome: outcome, err: err}
	}
}

func (m *consoleModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.service.DeleteParticipants(m.ctx, []string{id})
		return deleteDoneMsg{result: result, err: err}
	}
}

func validateForm(fields [fieldCount]string, now time.Time) error {
	if err := domainregistry.ValidateID(fields[fieldID]); err != nil {
		return err
	}
	if err := domainregistry.ValidateName(fields[fieldName]); err != nil {
		return err
	}
	if err := domainregistry.ValidatePhone(fields[fieldPhone]); err != nil {
		return err
	}
	return domainregistry.ValidateEventDate(fields[fieldDate], now)
}

func buildSaveInput(fields [fieldCount]string, locality string, overwrite bool) registry.SaveParticipantInput {
	return registry.SaveParticipantInput{
		ID:           fields[fieldID],
		Name:         fields[fieldName],
		Address:      fields[fieldAddress],
		Phone:        fields[fieldPhone],
		Affiliation:  fields[fieldAffiliation],
		EventDate:    fields[fieldDate],
		LocalityName: locality,
		Overwrite:    overwrite,
	}
}

func applyKeyToValue(value string, msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		if msg.Type == tea.KeySpace {
			return value + " "
		}
		return value + string(msg.Runes)
	case tea.KeyBackspace:
		runes := []rune(value)
		if len(runes) == 0 {
			return value
		}
		return string(runes[:len(runes)-1])
	}
	return value
}

func clampIndex(index int, length int) int {
	if length == 0 {
		return 0
	}
	if index < 0 {
		return 0
	}
	if index >= length {
		return length - 1
	}
	return index
}

func visibleWindow(selected int, length int, size int) (int, int) {
	if length <= size {
		return 0, length
	}
	start := selected - size/2
	if start < 0 {
		start = 0
	}
	end := start + size
	if end > length {
		end = length
		start = end - size
	}
	return start, end
}

func valueOrDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
