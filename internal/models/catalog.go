package models

// builtinSubjects is the fixed catalog every installation starts with. The
// names and topics match the legacy backup files, so they must not change.
var builtinSubjects = []Subject{
	{ID: 1, Name: "Cardiologia", Specialty: "Clínica", Topics: []string{"Arritmias", "Insuficiência Cardíaca", "Coronariopatias", "Hipertensão", "Valvopatias"}},
	{ID: 2, Name: "Pneumologia", Specialty: "Clínica", Topics: []string{"Asma", "DPOC", "Pneumonias", "Derrame Pleural", "Embolia Pulmonar"}},
	{ID: 3, Name: "Gastroenterologia", Specialty: "Clínica", Topics: []string{"DRGE", "Úlcera Péptica", "Hepatites", "Cirrose", "Pancreatite"}},
	{ID: 4, Name: "Neurologia", Specialty: "Clínica", Topics: []string{"AVC", "Epilepsia", "Cefaléias", "Demências", "Parkinson"}},
	{ID: 5, Name: "Endocrinologia", Specialty: "Clínica", Topics: []string{"Diabetes", "Tireoidopatias", "Obesidade", "Osteoporose", "Adrenal"}},
	{ID: 6, Name: "Ortopedia", Specialty: "Cirúrgica", Topics: []string{"Fraturas", "Artrose", "Meniscopatias", "Luxações", "Tendinites"}},
	{ID: 7, Name: "Cirurgia Geral", Specialty: "Cirúrgica", Topics: []string{"Apendicite", "Hérnias", "Vesícula", "Trauma", "Abdome Agudo"}},
	{ID: 8, Name: "Ginecologia", Specialty: "Cirúrgica", Topics: []string{"Miomas", "Cistos", "Endometriose", "Câncer Ginecológico", "Gravidez"}},
	{ID: 9, Name: "Urologia", Specialty: "Cirúrgica", Topics: []string{"Cálculos", "ITU", "Câncer Urológico", "Disfunções", "Próstata"}},
	{ID: 10, Name: "Pediatria", Specialty: "Clínica", Topics: []string{"Crescimento", "Vacinação", "Infecções", "Alergias", "Desenvolvimento"}},
}

// BuiltinSubjects returns a fresh copy of the fixed catalog so callers can
// never mutate the built-ins.
func BuiltinSubjects() []Subject {
	out := make([]Subject, len(builtinSubjects))
	for i, s := range builtinSubjects {
		copied := s
		copied.Topics = append([]string(nil), s.Topics...)
		out[i] = copied
	}
	return out
}
