package pets

// FieldCount es la cantidad exacta de campos de un registro en el archivo.
const FieldCount = 7

// Pet representa una mascota en adopción.
// El orden de los campos es posicional y fijo:
// id, name, species, age, gender, weight, description.
// Age, Gender y Weight son texto opaco: no se validan como número/enum.
type Pet struct {
	ID          string
	Name        string
	Species     string
	Age         string
	Gender      string
	Weight      string
	Description string
}

// Fields devuelve el registro en orden posicional (una fila del CSV).
func (p Pet) Fields() []string {
	return []string{p.ID, p.Name, p.Species, p.Age, p.Gender, p.Weight, p.Description}
}

// FromFields arma un Pet desde una fila. ok=false si la fila no tiene
// exactamente FieldCount campos.
func FromFields(fields []string) (Pet, bool) {
	if len(fields) != FieldCount {
		return Pet{}, false
	}
	return Pet{
		ID:          fields[0],
		Name:        fields[1],
		Species:     fields[2],
		Age:         fields[3],
		Gender:      fields[4],
		Weight:      fields[5],
		Description: fields[6],
	}, true
}

// Patch es una actualización parcial: string vacío = no tocar.
type Patch struct {
	Name        string
	Species     string
	Age         string
	Gender      string
	Weight      string
	Description string
}

// IsEmpty indica si el patch no cambia ningún campo.
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// Apply devuelve una copia de pet con los campos no vacíos del patch.
// El id nunca cambia.
func (p Patch) Apply(pet Pet) Pet {
	if p.Name != "" {
		pet.Name = p.Name
	}
	if p.Species != "" {
		pet.Species = p.Species
	}
	if p.Age != "" {
		pet.Age = p.Age
	}
	if p.Gender != "" {
		pet.Gender = p.Gender
	}
	if p.Weight != "" {
		pet.Weight = p.Weight
	}
	if p.Description != "" {
		pet.Description = p.Description
	}
	return pet
}
