package core

// Robot is an agent with a fixed skill set. Every robot starts at the
// depot and is available from time zero.
type Robot struct {
	ID     RobotID
	Skills SkillVector
}

// NewRobot creates a robot with the given skills.
func NewRobot(id RobotID, skills SkillVector) *Robot {
	return &Robot{ID: id, Skills: skills}
}

// CanPerform reports whether the robot alone covers every skill in req.
func (r *Robot) CanPerform(req SkillVector) bool {
	return r.Skills.Covers(req)
}
